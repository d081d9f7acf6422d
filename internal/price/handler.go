package price

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/prices", h.getPrices)
}

// getPrices accepts repeated ?name= parameters and/or a comma separated list.
func (h *Handler) getPrices(c *fiber.Ctx) error {
	names := make([]string, 0)
	for _, raw := range c.Context().QueryArgs().PeekMulti("name") {
		for _, n := range strings.Split(string(raw), ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "at least one name is required"})
	}

	items, err := h.service.ListByNames(c.UserContext(), names)
	if err != nil {
		h.service.log.Error("Database error: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "price lookup unavailable"})
	}
	return c.JSON(items)
}
