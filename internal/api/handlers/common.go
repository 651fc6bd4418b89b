package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/internal/api/presenters"
	"secret-recipe-backend/internal/utils/pagination"
	"secret-recipe-backend/internal/utils/rules"
)

// handleServiceError maps a service error onto the envelope: a validation
// failure surfaces its message verbatim as 400, anything else is a 500 with
// the cause kept server-side.
func handleServiceError(c *fiber.Ctx, err error) error {
	var validationErr *rules.ValidationError
	if errors.As(err, &validationErr) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, validationErr.Message, nil)
	}
	if errors.Is(err, domain.ErrParseUUID) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageServerError, err)
	}
	log.Errorf("unhandled service error on %s %s: %v", c.Method(), c.Path(), err)
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageServerError, err)
}

var errEmptyBody = errors.New("empty request body")

// parseBody rejects a blank payload before any field rule sees it, then binds
// the body.
func parseBody(c *fiber.Ctx, out any) error {
	if rules.EmptyBody(c.Body()) {
		return errEmptyBody
	}
	return c.BodyParser(out)
}

func parseParams(c *fiber.Ctx) pagination.Params {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("perPage"))
	return pagination.Params{Page: page, PerPage: perPage}
}

func parseListQuery(c *fiber.Ctx) domain.RecipeListQuery {
	q := domain.RecipeListQuery{
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PerPage, _ = strconv.Atoi(c.Query("perPage"))
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	return q
}

func noPagination(c *fiber.Ctx) bool {
	return c.Query("noPagination") == "true"
}
