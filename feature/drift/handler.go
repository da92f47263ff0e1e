package drift

import (
	"config-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for drift checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the drift routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/plugins")
	group.Get("/", h.HandleList)
	group.Get("/status", h.HandleStatusAll)
	group.Get("/:key", h.HandleStatus)
	group.Post("/:key/apply", h.HandleApply)

	app.Get("/history", h.HandleHistory)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if isNotFound(err) {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists managed files.
// @Summary List Managed Files
// @Description Lists every managed file with its configuration key.
// @Tags plugins
// @Produce json
// @Success 200 {array} drift.PluginInfo
// @Router /plugins [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleStatusAll reconciles every managed file.
// @Summary Check All Files
// @Description Compares every managed file with its value and returns results, planned actions and a summary.
// @Tags plugins
// @Produce json
// @Success 200 {object} reconcile.ReconcilePlan
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /plugins/status [get]
func (h *Handler) HandleStatusAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.CheckAll(c.Context())
	if err != nil {
		l.Error("Drift check failed", zap.Error(err))
		return h.fail(c, err)
	}

	if plan.Summary.Drifted() {
		l.Warn("Drift detected",
			zap.Int("out_of_sync", plan.Summary.OutOfSync),
			zap.Int("missing", plan.Summary.Missing),
		)
	}
	if plan.Summary.Failed > 0 {
		l.Error("Some managed files could not be checked", zap.Int("failed", plan.Summary.Failed))
	}
	return c.JSON(plan)
}

// HandleStatus reconciles one managed file.
// @Summary Check File
// @Description Compares one managed file with its value.
// @Tags plugins
// @Produce json
// @Param key path string true "Configuration key"
// @Success 200 {object} reconcile.ReconcileResult
// @Failure 404 {object} map[string]string "Unknown key"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /plugins/{key} [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	key := c.Params("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))

	result, err := h.service.Check(c.Context(), key)
	if err != nil {
		l.Error("Status check failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// HandleApply writes the value for one key to its file.
// @Summary Apply Value
// @Description Overwrites the managed file with the current value, reloads the dependent service and records the update.
// @Tags plugins
// @Produce json
// @Param key path string true "Configuration key"
// @Success 200 {object} reconcile.ReconcileResult
// @Failure 404 {object} map[string]string "Unknown key or no value"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /plugins/{key}/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	key := c.Params("key")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("key", key))
	l.Info("Applying value")

	result, err := h.service.Apply(c.Context(), key)
	if err != nil {
		l.Error("Apply failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// HandleHistory lists recent file updates.
// @Summary Update History
// @Description Lists recent managed file updates, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {array} history.FileUpdate
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	updates, err := h.service.History(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("History query failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(updates)
}
