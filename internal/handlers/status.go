package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/squad-to-scale-migrator/api/v1"
)

// GetStatus returns the progress of the running migration
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewMigrationStatus(h.statusSrv.Status()))
}
