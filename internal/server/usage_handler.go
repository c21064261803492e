package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stature/internal/dao"
)

// handleUsage reports the calls still available in the current period.
// @Summary Remaining analysis quota
// @Produce json
// @Success 200 {object} dao.UsageResponse "remaining calls"
// @Router /api/usage [get]
func (s *Server) handleUsage(c *gin.Context) {
	c.JSON(http.StatusOK, dao.UsageResponse{
		Remaining: s.pipeline.Remaining(),
	})
}
