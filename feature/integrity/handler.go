package integrity

import (
	"errors"

	"config-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/values", h.HandleValuesCheck)
	group.Get("/store", h.HandleStoreCheck)
	group.Get("/tools", h.HandleToolsCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Values, Store, Tools).
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckValues(ctx); err != nil {
		report["values"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["values"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if store, err := h.service.CheckStore(ctx); err != nil {
		report["store"] = fiber.Map{"status": "error", "error": err.Error()}
	} else if store != nil {
		report["store"] = store
	}

	report["tools"] = h.service.CheckTools()

	return c.JSON(report)
}

// HandleValuesCheck checks and optionally seeds missing values.
// @Summary Check Values
// @Description Lists managed keys without a value. With fix=true, seeds them from the current files.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Seed missing values"
// @Success 200 {object} map[string]interface{} "Values Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/values [get]
func (h *Handler) HandleValuesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckValues(c.Context())
	if err != nil {
		l.Error("Values check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing values detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to seed missing values")
			seeded, err := h.service.FixValues(c.Context(), missing)
			if err != nil {
				status := fiber.StatusInternalServerError
				if errors.Is(err, ErrReadOnlySource) {
					status = fiber.StatusConflict
				}
				return c.Status(status).JSON(fiber.Map{
					"error":   "Failed to seed values",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status":  "fixed",
				"fixed":   seeded,
				"missing": missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleStoreCheck checks the value bucket.
// @Summary Check Store
// @Description Verifies the bucket holding values exists and lists the stored keys.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.StoreReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/store [get]
func (h *Handler) HandleStoreCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckStore(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Store check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if report == nil {
		return c.JSON(fiber.Map{"status": "skipped"})
	}
	return c.JSON(report)
}

// HandleToolsCheck reports external programs.
// @Summary Check Tools
// @Description Reports whether diff and the reload program are installed.
// @Tags integrity
// @Produce json
// @Success 200 {array} checks.ToolReport
// @Router /integrity/tools [get]
func (h *Handler) HandleToolsCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckTools())
}
