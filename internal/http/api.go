package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"aportes-api/internal/repository"
	"aportes-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	aportes   service.AporteService
	gastos    service.GastoService
	jwtSecret []byte
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, aportes service.AporteService, gastos service.GastoService, jwtSecret string, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		aportes:   aportes,
		gastos:    gastos,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		usuarios := api.Group("/usuarios")
		{
			usuarios.POST("/registro", h.registro)
			usuarios.POST("/login", h.login)
		}

		aportes := api.Group("/aportes")
		{
			// Public aggregate first so it is not shadowed by the auth group.
			aportes.GET("/total-general", h.totalGeneralAportes)

			authed := aportes.Group("", authRequired(h.jwtSecret))
			authed.GET("", h.listAportes)
			authed.POST("", h.createAporte)
			authed.PUT("/:id", h.updateAporte)
			authed.DELETE("/:id", h.deleteAporte)
			authed.GET("/total", h.totalAportes)
		}

		gastos := api.Group("/gastos")
		{
			gastos.GET("/saldo-total", h.saldoTotal)
			gastos.GET("/todos", h.todosGastos)
			gastos.GET("/total-global", h.totalGlobalGastos)

			authed := gastos.Group("", authRequired(h.jwtSecret))
			authed.GET("", h.listGastos)
			authed.POST("", h.createGasto)
			authed.PUT("/:id", h.updateGasto)
			authed.DELETE("/:id", h.deleteGasto)
			authed.GET("/total", h.totalGastos)
		}

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

// respondError is the single boundary translating service and repository
// errors into the wire taxonomy. Unexpected failures are logged with their
// cause and surface as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "usuario already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseEntryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
