package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/pkg/tag"
)

type (
	TagHandler interface {
		GetTags(c *fiber.Ctx) error
		GetTag(c *fiber.Ctx) error
		CreateTag(c *fiber.Ctx) error
		UpdateTag(c *fiber.Ctx) error
		DeleteTag(c *fiber.Ctx) error
		DeleteAllTags(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService tag.TagService
	}
)

func NewTagHandler(tagService tag.TagService) TagHandler {
	return &tagHandler{tagService: tagService}
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	sort := c.Query("sort")

	if noPagination(c) {
		res, err := h.tagService.GetAllTags(c.Context(), sort)
		if err != nil {
			return handleServiceError(c, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.tagService.GetTags(c.Context(), sort, parseParams(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *tagHandler) GetTag(c *fiber.Ctx) error {
	res, err := h.tagService.GetTag(c.Context(), c.Params("tagId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *tagHandler) CreateTag(c *fiber.Ctx) error {
	req := new(domain.CreateTagRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.tagService.CreateTag(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *tagHandler) UpdateTag(c *fiber.Ctx) error {
	req := new(domain.UpdateTagRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.tagService.UpdateTag(c.Context(), c.Params("tagId"), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *tagHandler) DeleteTag(c *fiber.Ctx) error {
	res, err := h.tagService.DeleteTag(c.Context(), c.Params("tagId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *tagHandler) DeleteAllTags(c *fiber.Ctx) error {
	if err := h.tagService.DeleteAllTags(c.Context()); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}
