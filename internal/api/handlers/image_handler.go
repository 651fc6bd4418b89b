package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/internal/middleware"
	"secret-recipe-backend/pkg/image"
)

type (
	ImageHandler interface {
		UploadImage(c *fiber.Ctx) error
		DeleteImage(c *fiber.Ctx) error

		AdminGetImages(c *fiber.Ctx) error
		AdminGetImage(c *fiber.Ctx) error
		AdminDeleteImage(c *fiber.Ctx) error
		AdminDeleteMemberImages(c *fiber.Ctx) error
		AdminDeleteAllImages(c *fiber.Ctx) error
	}

	imageHandler struct {
		imageService image.ImageService
	}
)

func NewImageHandler(imageService image.ImageService) ImageHandler {
	return &imageHandler{imageService: imageService}
}

func (h *imageHandler) UploadImage(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageNoImageUploaded, err)
	}

	res, err := h.imageService.UploadImage(c.Context(), auth.UserID, c.Query("type"), file)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *imageHandler) DeleteImage(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.imageService.DeleteImage(c.Context(), c.Params("imageId"), auth.UserID, auth.Role == entities.RoleAdmin)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *imageHandler) AdminGetImages(c *fiber.Ctx) error {
	sort := c.Query("sort")

	if noPagination(c) {
		res, err := h.imageService.GetAllImages(c.Context(), sort)
		if err != nil {
			return handleServiceError(c, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.imageService.GetImages(c.Context(), sort, parseParams(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *imageHandler) AdminGetImage(c *fiber.Ctx) error {
	res, err := h.imageService.GetImage(c.Context(), c.Params("imageId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *imageHandler) AdminDeleteImage(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.imageService.DeleteImage(c.Context(), c.Params("imageId"), auth.UserID, true)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *imageHandler) AdminDeleteMemberImages(c *fiber.Ctx) error {
	if err := h.imageService.DeleteMemberImages(c.Context(), c.Params("memberId")); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}

func (h *imageHandler) AdminDeleteAllImages(c *fiber.Ctx) error {
	if err := h.imageService.DeleteAllImages(c.Context()); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}
