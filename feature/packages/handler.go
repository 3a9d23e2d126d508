package packages

import (
	"errors"

	"pak-index/core/database"
	"pak-index/core/logger"
	"pak-index/core/registry"
	"pak-index/feature/packages/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the package index.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the package routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/packages")
	group.Get("/", h.HandleStatus)
	group.Get("/categories", h.HandleCategories)
	group.Get("/files", h.HandleFiles)
	group.Get("/catalog", h.HandleCatalog)
	group.Post("/:id/open", h.HandleOpen)
}

// HandleStatus lists the opened packages.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleCategories lists category summaries.
func (h *Handler) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}

// HandleFiles lists indexed paths. Query: prefix, limit (default 1000).
func (h *Handler) HandleFiles(c *fiber.Ctx) error {
	return c.JSON(h.service.Files(c.Query("prefix"), c.QueryInt("limit", 1000)))
}

// HandleOpen opens one package, optionally with an explicit key.
func (h *Handler) HandleOpen(c *fiber.Ctx) error {
	var req models.OpenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	pkg, err := h.service.Open(c.Context(), c.Params("id"), req.Key)
	if err != nil {
		var openErr *registry.OpenError
		if errors.As(err, &openErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.WithRayID(h.service.logger, c).Error("Package open failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(pkg)
}

// HandleCatalog returns the persisted container catalog.
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	rows, err := h.service.Catalog(c.Context())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, database.ErrNoDatabase) {
			status = fiber.StatusServiceUnavailable
		} else {
			logger.WithRayID(h.service.logger, c).Error("Catalog query failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(rows)
}
