package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stature/internal/dao"
	"stature/internal/pipeline"
	"stature/internal/reasoning"
	"stature/internal/vision"
	"stature/pkg/log"
)

// handleAnalyze runs the full analysis pipeline over the submitted images.
// @Summary Estimate subject height from photos
// @Description Accepts 1-4 data-URI encoded images, detects objects and faces in each, and asks the reasoning upstream for a consolidated height estimation report.
// @Accept json
// @Produce json
// @Param req body dao.AnalyzeRequest true "image payloads"
// @Success 200 {object} dao.AnalysisReport "analysis report"
// @Failure 400 {object} ErrorResponse "missing/invalid images or no person detected"
// @Failure 429 {object} ErrorResponse "hourly limit exhausted"
// @Failure 500 {object} ErrorResponse "upstream failure"
// @Router /api/analyze [post]
func (s *Server) handleAnalyze(c *gin.Context) {
	var req dao.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, errors.New("no image data provided"))
		return
	}
	images, err := req.DecodeImages()
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	// A deadline on both upstream calls keeps a hung upstream from holding
	// the reserved quota unit indefinitely.
	ctx := c.Request.Context()
	if s.conf.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.conf.RequestTimeout)*time.Second)
		defer cancel()
	}

	report, err := s.pipeline.Analyze(ctx, images)
	if err != nil {
		s.writeAnalyzeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Upstream detail stays in the server log; the caller only gets a short
// generic message.
func (s *Server) writeAnalyzeError(c *gin.Context, err error) {
	logger := log.GetLogger(c.Request.Context())

	switch {
	case errors.Is(err, pipeline.ErrQuotaExhausted):
		logger.Info("rate limit hit, hourly analysis quota exhausted")
		s.writeError(c, http.StatusTooManyRequests,
			errors.New("hourly free analysis limit reached, please try again later"))
		return
	case errors.Is(err, pipeline.ErrNoSubject):
		s.writeError(c, http.StatusBadRequest, pipeline.ErrNoSubject)
		return
	}

	var visionErr *vision.UpstreamError
	var reasoningErr *reasoning.UpstreamError
	switch {
	case errors.As(err, &visionErr):
		logger.WithError(err).Error("vision upstream failed, usage refunded")
	case errors.As(err, &reasoningErr):
		logger.WithError(err).Error("reasoning upstream failed, usage refunded")
	default:
		logger.WithError(err).Error("analysis pipeline failed, usage refunded")
	}
	s.writeError(c, http.StatusInternalServerError,
		errors.New("failed to analyze image with the AI service"))
}
