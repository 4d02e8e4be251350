package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitai/fitai-api/internal/domain/catalog"
	"github.com/fitai/fitai-api/internal/domain/diet"
	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/internal/domain/workout"
)

// SplitCatalog is the read side of the split guide used by the catalog endpoints.
type SplitCatalog interface {
	Splits() []catalog.Split
	Split(id string) (catalog.Split, error)
	Options() catalog.Options
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	dietSvc    diet.Service
	workoutSvc workout.Service
	catalog    SplitCatalog
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(dietSvc diet.Service, workoutSvc workout.Service, splits SplitCatalog, logger *slog.Logger) *Handler {
	return &Handler{
		dietSvc:    dietSvc,
		workoutSvc: workoutSvc,
		catalog:    splits,
		logger:     logger.With("component", "http.handler"),
	}
}

// Diet relays a diet profile to the provider and returns its plan unchanged.
func (h *Handler) Diet(c *gin.Context) {
	var profile diet.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	plan, err := h.dietSvc.Generate(c.Request.Context(), profile)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	h.writePlan(c, plan)
}

// Workout relays a fitness profile to the provider and returns its plan unchanged.
func (h *Handler) Workout(c *gin.Context) {
	var profile workout.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	plan, err := h.workoutSvc.Generate(c.Request.Context(), profile)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	h.writePlan(c, plan)
}

// Splits lists the training split guide.
func (h *Handler) Splits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"splits": h.catalog.Splits()})
}

// Split returns a single split by id.
func (h *Handler) Split(c *gin.Context) {
	split, err := h.catalog.Split(c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, split)
}

// Options returns the accepted values of every enumerated profile field.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Options())
}

// Healthz reports liveness. It does not check the provider credential.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) writePlan(c *gin.Context, plan relay.Plan) {
	h.logger.Debug("plan relayed", "path", c.FullPath(), "bytes", len(plan.Body), "total_tokens", plan.Usage.TotalTokens, "duration_ms", plan.DurationMs)
	c.Data(http.StatusOK, "application/json; charset=utf-8", plan.Body)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
