package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/internal/middleware"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/pkg/user"
)

type (
	UserHandler interface {
		SignUp(c *fiber.Ctx) error
		SignIn(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		UpdatePassword(c *fiber.Ctx) error
		GetPublicProfile(c *fiber.Ctx) error
		GetCollectList(c *fiber.Ctx) error
		ForgetPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error

		AdminSignIn(c *fiber.Ctx) error
		AdminCheck(c *fiber.Ctx) error
		GetMembers(c *fiber.Ctx) error
		GetMember(c *fiber.Ctx) error
		UpdateMember(c *fiber.Ctx) error
		DeleteMember(c *fiber.Ctx) error
		DeleteAllMembers(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{userService: userService, validator: validator}
}

func (h *userHandler) SignUp(c *fiber.Ctx) error {
	req := new(domain.SignUpRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.SignUp(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *userHandler) SignIn(c *fiber.Ctx) error {
	req := new(domain.SignInRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.SignIn(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) GetProfile(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.userService.GetProfile(c.Context(), auth.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) UpdateProfile(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	req := new(domain.UpdateProfileRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.UpdateProfile(c.Context(), auth.UserID, *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) UpdatePassword(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	req := new(domain.UpdatePasswordRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.UpdatePassword(c.Context(), auth.UserID, *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) GetPublicProfile(c *fiber.Ctx) error {
	res, err := h.userService.GetPublicProfile(c.Context(), c.Params("userId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) GetCollectList(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	res, err := h.userService.GetCollectList(c.Context(), auth.UserID, parseListQuery(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) ForgetPassword(c *fiber.Ctx) error {
	req := new(domain.ForgetPasswordRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidEmail, err)
	}

	if err := h.userService.ForgetPassword(c.Context(), *req); err != nil {
		var validationErr *rules.ValidationError
		if errors.As(err, &validationErr) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, validationErr.Message, nil)
		}
		// past validation the only failures left are infrastructure ones,
		// dominated by the SMTP send
		log.Errorf("reset mail delivery failed: %v", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageResetMailFailed, err)
	}
	return presenters.SuccessResponse(c, domain.MessageResetMailSent, fiber.StatusOK)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageResetTokenInvalid, err)
	}

	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}

func (h *userHandler) AdminSignIn(c *fiber.Ctx) error {
	req := new(domain.SignInRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.AdminSignIn(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

// AdminCheck only answers after the auth and admin middleware both passed, so
// reaching it is the whole check.
func (h *userHandler) AdminCheck(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}

func (h *userHandler) GetMembers(c *fiber.Ctx) error {
	sort := c.Query("sort")

	if noPagination(c) {
		res, err := h.userService.GetAllMembers(c.Context(), sort)
		if err != nil {
			return handleServiceError(c, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.userService.GetMembers(c.Context(), sort, parseParams(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) GetMember(c *fiber.Ctx) error {
	res, err := h.userService.GetMember(c.Context(), c.Params("memberId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) UpdateMember(c *fiber.Ctx) error {
	req := new(domain.UpdateMemberRequest)
	if err := parseBody(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageEmptyBody, err)
	}

	res, err := h.userService.UpdateMember(c.Context(), c.Params("memberId"), *req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) DeleteMember(c *fiber.Ctx) error {
	res, err := h.userService.DeleteMember(c.Context(), c.Params("memberId"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) DeleteAllMembers(c *fiber.Ctx) error {
	if err := h.userService.DeleteAllMembers(c.Context()); err != nil {
		return handleServiceError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK)
}
