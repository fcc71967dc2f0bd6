package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aportes-api/internal/service"
)

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindImagen extracts the optional "imagen" file from a multipart form.
// Absence of the file is not an error; update handlers treat it as "keep the
// stored attachment".
func (h *Handler) bindImagen(c *gin.Context) (*service.ImagenUpload, func(), bool) {
	noop := func() {}

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid imagen upload"})
		return nil, noop, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid imagen upload"})
		return nil, noop, false
	}

	return &service.ImagenUpload{
		Reader:      f,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, func() { f.Close() }, true
}
