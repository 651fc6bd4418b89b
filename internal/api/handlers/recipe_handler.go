package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/internal/middleware"
	"secret-recipe-backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetPublicRecipes(c *fiber.Ctx) error
		GetMemberPublicRecipes(c *fiber.Ctx) error
		GetPublicRecipe(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		Collect(c *fiber.Ctx) error
		Uncollect(c *fiber.Ctx) error

		AdminCreateRecipe(c *fiber.Ctx) error
		AdminGetRecipes(c *fiber.Ctx) error
		AdminGetRecipe(c *fiber.Ctx) error
		AdminUpdateRecipe(c *fiber.Ctx) error
		AdminDeleteRecipe(c *fiber.Ctx) error
		AdminGetMemberRecipes(c *fiber.Ctx) error
		AdminDeleteMemberRecipes(c *fiber.Ctx) error
		AdminDeleteAllRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) GetPublicRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetPublicRecipes(c.Context(), parseListQuery(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetMemberPublicRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetMemberPublicRecipes(c.Context(), c.Params("userId"), parseListQuery(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetPublicRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetPublicRecipe(c.Context(), c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.recipeService.GetMyRecipes(c.Context(), auth.UserID, parseListQuery(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	req := new(domain.CreateRecipeRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), auth.UserID, *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	req := new(domain.UpdateRecipeRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.recipeService.UpdateOwnRecipe(c.Context(), auth.UserID, c.Params("recipeId"), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.recipeService.DeleteOwnRecipe(c.Context(), auth.UserID, c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) Collect(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.recipeService.Collect(c.Context(), auth.UserID, c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) Uncollect(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.recipeService.Uncollect(c.Context(), auth.UserID, c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminCreateRecipe(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	req := new(domain.CreateRecipeRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), auth.UserID, *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) AdminGetRecipes(c *fiber.Ctx) error {
	q := parseListQuery(c)

	if noPagination(c) {
		res, err := h.recipeService.GetAllRecipesAdmin(c.Context(), q)
		if err != nil {
			return handleServiceError(c, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.recipeService.GetRecipesAdmin(c.Context(), q)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminGetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeAdmin(c.Context(), c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminUpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.recipeService.UpdateRecipeAdmin(c.Context(), c.Params("recipeId"), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminDeleteRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.DeleteRecipeAdmin(c.Context(), c.Params("recipeId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminGetMemberRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetMemberRecipesAdmin(c.Context(), c.Params("memberId"), parseListQuery(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) AdminDeleteMemberRecipes(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteMemberRecipesAdmin(c.Context(), c.Params("memberId")); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}

func (h *recipeHandler) AdminDeleteAllRecipes(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteAllRecipesAdmin(c.Context()); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}
