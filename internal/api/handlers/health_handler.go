package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type HealthHandler struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewHealthHandler(pool *pgxpool.Pool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		pool:   pool,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Report database connectivity and pgvector availability
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := h.pool.Ping(c.Context()); err != nil {
		h.logger.Error("Health check: database unreachable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "unreachable",
		})
	}

	var extension string
	err := h.pool.QueryRow(c.Context(),
		"SELECT extname FROM pg_extension WHERE extname = 'vector'",
	).Scan(&extension)
	if err != nil {
		h.logger.Error("Health check: pgvector extension missing", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "ok",
			"pgvector": "missing",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "ok",
		"pgvector": "ok",
	})
}
