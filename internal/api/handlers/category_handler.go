package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/pkg/category"
)

type (
	CategoryHandler interface {
		GetCategories(c *fiber.Ctx) error
		GetCategory(c *fiber.Ctx) error
		CreateCategory(c *fiber.Ctx) error
		UpdateCategory(c *fiber.Ctx) error
		DeleteCategory(c *fiber.Ctx) error
		DeleteAllCategories(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
	}
)

func NewCategoryHandler(categoryService category.CategoryService) CategoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

func (h *categoryHandler) GetCategories(c *fiber.Ctx) error {
	sort := c.Query("sort")

	if noPagination(c) {
		res, err := h.categoryService.GetAllCategories(c.Context(), sort)
		if err != nil {
			return handleServiceError(c, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.categoryService.GetCategories(c.Context(), sort, parseParams(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *categoryHandler) GetCategory(c *fiber.Ctx) error {
	res, err := h.categoryService.GetCategory(c.Context(), c.Params("categoryId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *categoryHandler) CreateCategory(c *fiber.Ctx) error {
	req := new(domain.CreateCategoryRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.categoryService.CreateCategory(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *categoryHandler) UpdateCategory(c *fiber.Ctx) error {
	req := new(domain.UpdateCategoryRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.categoryService.UpdateCategory(c.Context(), c.Params("categoryId"), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *categoryHandler) DeleteCategory(c *fiber.Ctx) error {
	res, err := h.categoryService.DeleteCategory(c.Context(), c.Params("categoryId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *categoryHandler) DeleteAllCategories(c *fiber.Ctx) error {
	if err := h.categoryService.DeleteAllCategories(c.Context()); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}
