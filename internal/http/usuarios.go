package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aportes-api/internal/domain"
)

type registroRequest struct {
	Nombre     string `json:"nombre" binding:"required"`
	Usuario    string `json:"usuario" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

type loginRequest struct {
	Usuario    string `json:"usuario" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

// UsuarioResponse is the public shape of an account. The password digest is
// never part of it.
type UsuarioResponse struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Usuario   string `json:"usuario"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) registro(c *gin.Context) {
	var req registroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Nombre, req.Usuario, req.Contrasena)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, usuarioToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Usuario, req.Contrasena)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   result.Token,
		"nombre":  result.Nombre,
		"usuario": result.Usuario,
	})
}

func usuarioToResponse(user *domain.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:        user.ID,
		Nombre:    user.Nombre,
		Usuario:   user.Usuario,
		CreatedAt: formatTime(user.CreatedAt),
	}
}
