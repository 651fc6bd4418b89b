package routes

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/handlers"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/internal/middleware"
	"secret-recipe-backend/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	CategoryHandler handlers.CategoryHandler
	TagHandler      handlers.TagHandler
	ImageHandler    handlers.ImageHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.MemberRoutes()
	c.AdminRoutes()
	c.NotFound()
}

func (c *Config) MemberRoutes() {
	api := c.App.Group("/api")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	// account
	{
		api.Post("/user/sign_up", c.UserHandler.SignUp)
		api.Post("/user/sign_in", c.UserHandler.SignIn)
		api.Get("/user/profile", auth, c.UserHandler.GetProfile)
		api.Patch("/user/profile", auth, c.UserHandler.UpdateProfile)
		api.Patch("/user/password", auth, c.UserHandler.UpdatePassword)
		api.Get("/user/collects", auth, c.UserHandler.GetCollectList)
		api.Get("/user/:userId/profile", c.UserHandler.GetPublicProfile)
		api.Post("/forget-password", c.UserHandler.ForgetPassword)
		api.Post("/reset-password", c.UserHandler.ResetPassword)
	}

	// recipes
	{
		api.Get("/publicRecipes", c.RecipeHandler.GetPublicRecipes)
		api.Get("/publicRecipes/user/:userId", c.RecipeHandler.GetMemberPublicRecipes)
		api.Get("/recipes", auth, c.RecipeHandler.GetMyRecipes)
		api.Post("/recipe", auth, c.RecipeHandler.CreateRecipe)
		api.Get("/recipe/:recipeId", c.RecipeHandler.GetPublicRecipe)
		api.Patch("/recipe/:recipeId", auth, c.RecipeHandler.UpdateRecipe)
		api.Delete("/recipe/:recipeId", auth, c.RecipeHandler.DeleteRecipe)
		api.Post("/recipe/:recipeId/collect", auth, c.RecipeHandler.Collect)
		api.Delete("/recipe/:recipeId/collect", auth, c.RecipeHandler.Uncollect)
	}

	// browsing and uploads
	{
		api.Get("/categories", c.CategoryHandler.GetCategories)
		api.Get("/category/:categoryId", c.CategoryHandler.GetCategory)
		api.Get("/tags", c.TagHandler.GetTags)
		api.Get("/tag/:tagId", c.TagHandler.GetTag)
		api.Post("/image", auth, c.ImageHandler.UploadImage)
		api.Delete("/image/:imageId", auth, c.ImageHandler.DeleteImage)
	}
}

func (c *Config) AdminRoutes() {
	c.App.Post("/admin/sign_in", c.UserHandler.AdminSignIn)

	admin := c.App.Group("/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	admin.Get("/check", c.UserHandler.AdminCheck)

	// members
	{
		admin.Get("/members", c.UserHandler.GetMembers)
		admin.Delete("/members", c.UserHandler.DeleteAllMembers)
		admin.Get("/member/:memberId", c.UserHandler.GetMember)
		admin.Patch("/member/:memberId", c.UserHandler.UpdateMember)
		admin.Delete("/member/:memberId", c.UserHandler.DeleteMember)
	}

	// recipes
	{
		admin.Get("/recipes", c.RecipeHandler.AdminGetRecipes)
		admin.Delete("/recipes", c.RecipeHandler.AdminDeleteAllRecipes)
		admin.Get("/recipes/member/:memberId", c.RecipeHandler.AdminGetMemberRecipes)
		admin.Delete("/recipes/member/:memberId", c.RecipeHandler.AdminDeleteMemberRecipes)
		admin.Post("/recipe", c.RecipeHandler.AdminCreateRecipe)
		admin.Get("/recipe/:recipeId", c.RecipeHandler.AdminGetRecipe)
		admin.Patch("/recipe/:recipeId", c.RecipeHandler.AdminUpdateRecipe)
		admin.Delete("/recipe/:recipeId", c.RecipeHandler.AdminDeleteRecipe)
	}

	// categories and tags
	{
		admin.Get("/categories", c.CategoryHandler.GetCategories)
		admin.Delete("/categories", c.CategoryHandler.DeleteAllCategories)
		admin.Post("/category", c.CategoryHandler.CreateCategory)
		admin.Get("/category/:categoryId", c.CategoryHandler.GetCategory)
		admin.Patch("/category/:categoryId", c.CategoryHandler.UpdateCategory)
		admin.Delete("/category/:categoryId", c.CategoryHandler.DeleteCategory)

		admin.Get("/tags", c.TagHandler.GetTags)
		admin.Delete("/tags", c.TagHandler.DeleteAllTags)
		admin.Post("/tag", c.TagHandler.CreateTag)
		admin.Get("/tag/:tagId", c.TagHandler.GetTag)
		admin.Patch("/tag/:tagId", c.TagHandler.UpdateTag)
		admin.Delete("/tag/:tagId", c.TagHandler.DeleteTag)
	}

	// images
	{
		admin.Get("/images", c.ImageHandler.AdminGetImages)
		admin.Delete("/images", c.ImageHandler.AdminDeleteAllImages)
		admin.Delete("/images/member/:memberId", c.ImageHandler.AdminDeleteMemberImages)
		admin.Get("/image/:imageId", c.ImageHandler.AdminGetImage)
		admin.Delete("/image/:imageId", c.ImageHandler.AdminDeleteImage)
	}
}

// NotFound registers last so every unmatched path gets the uniform envelope.
func (c *Config) NotFound() {
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
	})
}
