package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

type StatusReader interface {
	Status() models.MigrationStatus
}

type Handler struct {
	statusSrv StatusReader
}

func New(statusSrv StatusReader) *Handler {
	return &Handler{
		statusSrv: statusSrv,
	}
}

// RegisterHandlers binds the API routes on router, which is expected to be prefixed with /api/v1.
func RegisterHandlers(router gin.IRouter, h *Handler) {
	router.GET("/status", h.GetStatus)
}
