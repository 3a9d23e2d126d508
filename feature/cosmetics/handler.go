package cosmetics

import (
	"errors"

	"pak-index/core/category"
	"pak-index/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cosmetic items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/", h.HandleListTypes)
	group.Get("/:type", h.HandleListItems)
	group.Get("/:type/:id", h.HandleGetItem)
}

// HandleListTypes returns the item types with their item counts.
func (h *Handler) HandleListTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}

// HandleListItems returns the ids of every item of a type.
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	ids, err := h.service.List(c.Params("type"))
	if err != nil {
		return h.fail(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"type": c.Params("type"), "items": ids})
}

// HandleGetItem returns the composed view of one item.
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	view, err := h.service.Item(c.Context(), c.Params("type"), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.service.logger, c)
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownItemType), errors.Is(err, category.ErrUnknownCategory):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrItemNotFound):
		status = fiber.StatusNotFound
	default:
		l.Error("Item query failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
