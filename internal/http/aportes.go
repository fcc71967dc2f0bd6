package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aportes-api/internal/domain"
	"aportes-api/internal/service"
)

type aporteRequest struct {
	Monto        domain.Centavos `json:"monto"`
	NumeroAporte int             `json:"numero_aporte"`
	Fecha        string          `json:"fecha" binding:"required"`
	Banco        string          `json:"banco"`
}

// AporteResponse is the wire shape of a contribution entry.
type AporteResponse struct {
	ID           int64           `json:"id"`
	UsuarioID    int64           `json:"usuario_id"`
	Monto        domain.Centavos `json:"monto"`
	NumeroAporte int             `json:"numero_aporte"`
	Fecha        string          `json:"fecha"`
	Banco        string          `json:"banco"`
	ImagenURL    string          `json:"imagen_url"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func (h *Handler) listAportes(c *gin.Context) {
	aportes, err := h.aportes.List(c.Request.Context(), usuarioID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]AporteResponse, len(aportes))
	for i := range aportes {
		resp[i] = aporteToResponse(&aportes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createAporte(c *gin.Context) {
	in, imagen, closeImagen, ok := h.bindAporte(c)
	if !ok {
		return
	}
	defer closeImagen()

	aporte, err := h.aportes.Create(c.Request.Context(), usuarioID(c), in, imagen)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, aporteToResponse(aporte))
}

func (h *Handler) updateAporte(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	in, imagen, closeImagen, ok := h.bindAporte(c)
	if !ok {
		return
	}
	defer closeImagen()

	aporte, err := h.aportes.Update(c.Request.Context(), usuarioID(c), id, in, imagen)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aporteToResponse(aporte))
}

func (h *Handler) deleteAporte(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	aporte, err := h.aportes.Delete(c.Request.Context(), usuarioID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aporteToResponse(aporte))
}

func (h *Handler) totalAportes(c *gin.Context) {
	total, err := h.aportes.Total(c.Request.Context(), usuarioID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) totalGeneralAportes(c *gin.Context) {
	total, err := h.aportes.TotalGeneral(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// bindAporte accepts either a JSON body or a multipart form carrying the same
// field names plus an optional "imagen" file. The returned closer releases the
// uploaded file handle and is always safe to call.
func (h *Handler) bindAporte(c *gin.Context) (service.AporteInput, *service.ImagenUpload, func(), bool) {
	noop := func() {}

	if !isMultipart(c) {
		var req aporteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return service.AporteInput{}, nil, noop, false
		}
		return service.AporteInput{
			Monto:        req.Monto,
			NumeroAporte: req.NumeroAporte,
			Fecha:        req.Fecha,
			Banco:        req.Banco,
		}, nil, noop, true
	}

	monto, err := domain.ParseCentavos(c.PostForm("monto"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid monto"})
		return service.AporteInput{}, nil, noop, false
	}
	numero := 0
	if raw := strings.TrimSpace(c.PostForm("numero_aporte")); raw != "" {
		numero, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid numero_aporte"})
			return service.AporteInput{}, nil, noop, false
		}
	}

	in := service.AporteInput{
		Monto:        monto,
		NumeroAporte: numero,
		Fecha:        c.PostForm("fecha"),
		Banco:        c.PostForm("banco"),
	}

	imagen, closeImagen, ok := h.bindImagen(c)
	if !ok {
		return service.AporteInput{}, nil, noop, false
	}
	return in, imagen, closeImagen, true
}

func aporteToResponse(aporte *domain.Aporte) AporteResponse {
	return AporteResponse{
		ID:           aporte.ID,
		UsuarioID:    aporte.UsuarioID,
		Monto:        aporte.Monto,
		NumeroAporte: aporte.NumeroAporte,
		Fecha:        aporte.Fecha,
		Banco:        aporte.Banco,
		ImagenURL:    aporte.ImagenURL,
		CreatedAt:    formatTime(aporte.CreatedAt),
		UpdatedAt:    formatTime(aporte.UpdatedAt),
	}
}
