package handler

import (
	"context"
	"errors"
	"net/http"

	"optimistify/internal/model"
	"optimistify/internal/service"
	"optimistify/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Reframer is the part of the service the handler depends on.
type Reframer interface {
	Reframe(ctx context.Context, text string, history []model.Message) (*service.ReframeResult, error)
}

type ReframeHandler struct {
	reframer Reframer
}

func NewReframeHandler(reframer Reframer) *ReframeHandler {
	return &ReframeHandler{
		reframer: reframer,
	}
}

func (h *ReframeHandler) Reframe(c *gin.Context) {
	var req model.ReframeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request body"})
		return
	}

	history := req.ConversationHistory
	if history == nil {
		history = []model.Message{}
	}

	result, err := h.reframer.Reframe(c.Request.Context(), req.Text, history)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ReframeResponse{
		Text:                result.Text,
		ConversationHistory: result.History,
	})
}

// MethodNotAllowed answers any verb other than POST on the reframe route.
func (h *ReframeHandler) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
}

func (h *ReframeHandler) writeError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{Kind: service.KindUpstreamFailure, Message: "Failed to process request", Err: err}
	}

	logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"kind":       svcErr.Kind,
	}).WithError(err).Warn("reframe failed")

	c.JSON(svcErr.StatusCode(), model.ErrorResponse{Error: svcErr.Message})
}
