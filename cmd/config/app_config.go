package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"secret-recipe-backend/internal/api/handlers"
	"secret-recipe-backend/internal/api/routes"
	"secret-recipe-backend/internal/middleware"
	"secret-recipe-backend/internal/utils"
	"secret-recipe-backend/internal/utils/storage"
	"secret-recipe-backend/pkg/category"
	"secret-recipe-backend/pkg/image"
	"secret-recipe-backend/pkg/integrity"
	"secret-recipe-backend/pkg/jwt"
	"secret-recipe-backend/pkg/recipe"
	"secret-recipe-backend/pkg/tag"
	"secret-recipe-backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Taipei",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	tagRepository := tag.NewTagRepository(db)
	imageRepository := image.NewImageRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	integrityService := integrity.NewIntegrityService(db, s3)
	userService := user.NewUserService(userRepository, recipeRepository, integrityService, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, categoryRepository, tagRepository, integrityService)
	categoryService := category.NewCategoryService(categoryRepository)
	tagService := tag.NewTagService(tagRepository)
	imageService := image.NewImageService(imageRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	tagHandler := handlers.NewTagHandler(tagService)
	imageHandler := handlers.NewImageHandler(imageService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		CategoryHandler: categoryHandler,
		TagHandler:      tagHandler,
		ImageHandler:    imageHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
