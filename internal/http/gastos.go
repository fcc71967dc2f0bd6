package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aportes-api/internal/domain"
	"aportes-api/internal/service"
)

type gastoRequest struct {
	Monto       domain.Centavos `json:"monto"`
	Descripcion string          `json:"descripcion"`
	Fecha       string          `json:"fecha" binding:"required"`
}

// GastoResponse is the wire shape of an expense entry.
type GastoResponse struct {
	ID          int64           `json:"id"`
	UsuarioID   int64           `json:"usuario_id"`
	Monto       domain.Centavos `json:"monto"`
	Descripcion string          `json:"descripcion"`
	Fecha       string          `json:"fecha"`
	ImagenURL   string          `json:"imagen_url"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// GastoConUsuarioResponse adds the owner's display name to the join view.
type GastoConUsuarioResponse struct {
	GastoResponse
	UsuarioNombre string `json:"usuario_nombre"`
}

func (h *Handler) listGastos(c *gin.Context) {
	gastos, err := h.gastos.List(c.Request.Context(), usuarioID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]GastoResponse, len(gastos))
	for i := range gastos {
		resp[i] = gastoToResponse(&gastos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createGasto(c *gin.Context) {
	in, imagen, closeImagen, ok := h.bindGasto(c)
	if !ok {
		return
	}
	defer closeImagen()

	gasto, err := h.gastos.Create(c.Request.Context(), usuarioID(c), in, imagen)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gastoToResponse(gasto))
}

func (h *Handler) updateGasto(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	in, imagen, closeImagen, ok := h.bindGasto(c)
	if !ok {
		return
	}
	defer closeImagen()

	gasto, err := h.gastos.Update(c.Request.Context(), usuarioID(c), id, in, imagen)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gastoToResponse(gasto))
}

func (h *Handler) deleteGasto(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	gasto, err := h.gastos.Delete(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gastoToResponse(gasto))
}

func (h *Handler) totalGastos(c *gin.Context) {
	total, err := h.gastos.Total(c.Request.Context(), usuarioID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) totalGlobalGastos(c *gin.Context) {
	total, err := h.gastos.TotalGlobal(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) saldoTotal(c *gin.Context) {
	saldo, err := h.gastos.SaldoTotal(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saldo": saldo})
}

func (h *Handler) todosGastos(c *gin.Context) {
	gastos, err := h.gastos.ListTodos(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]GastoConUsuarioResponse, len(gastos))
	for i := range gastos {
		resp[i] = GastoConUsuarioResponse{
			GastoResponse: gastoToResponse(&gastos[i].Gasto),
			UsuarioNombre: gastos[i].UsuarioNombre,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindGasto(c *gin.Context) (service.GastoInput, *service.ImagenUpload, func(), bool) {
	noop := func() {}

	if !isMultipart(c) {
		var req gastoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return service.GastoInput{}, nil, noop, false
		}
		return service.GastoInput{
			Monto:       req.Monto,
			Descripcion: req.Descripcion,
			Fecha:       req.Fecha,
		}, nil, noop, true
	}

	monto, err := domain.ParseCentavos(c.PostForm("monto"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid monto"})
		return service.GastoInput{}, nil, noop, false
	}

	in := service.GastoInput{
		Monto:       monto,
		Descripcion: c.PostForm("descripcion"),
		Fecha:       c.PostForm("fecha"),
	}

	imagen, closeImagen, ok := h.bindImagen(c)
	if !ok {
		return service.GastoInput{}, nil, noop, false
	}
	return in, imagen, closeImagen, true
}

func gastoToResponse(gasto *domain.Gasto) GastoResponse {
	return GastoResponse{
		ID:          gasto.ID,
		UsuarioID:   gasto.UsuarioID,
		Monto:       gasto.Monto,
		Descripcion: gasto.Descripcion,
		Fecha:       gasto.Fecha,
		ImagenURL:   gasto.ImagenURL,
		CreatedAt:   formatTime(gasto.CreatedAt),
		UpdatedAt:   formatTime(gasto.UpdatedAt),
	}
}
