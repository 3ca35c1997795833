package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"taskops/internal/delivery/http/middleware"
	"taskops/internal/delivery/http/response"
	"taskops/internal/domain/entity"
	domainerrors "taskops/internal/domain/errors"
	"taskops/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AgentHandler streams agent run events over Server-Sent Events.
type AgentHandler struct {
	uc     usecase.AgentUsecase
	logger *slog.Logger
}

// NewAgentHandler is the constructor for AgentHandler, injected by Fx.
func NewAgentHandler(uc usecase.AgentUsecase, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{
		uc:     uc,
		logger: logger,
	}
}

type runAgentRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// Run starts an agent run for the authenticated user and streams its events
// until the run finishes or the client disconnects.
func (h *AgentHandler) Run(c echo.Context) error {
	user, ok := c.Get(middleware.ContextKeyUser).(*entity.User)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("user missing from request context")
	}

	var req runAgentRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid agent run input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()
	events, err := h.uc.Run(ctx, user, &usecase.RunAgentInput{Prompt: req.Prompt})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		return errors.New("response writer does not support streaming")
	}

	for event := range events {
		if err := writeSSEEvent(resp, event); err != nil {
			h.logger.Debug("Agent stream write failed, client likely gone", "error", err, "userID", user.ID)

			return nil
		}
		flusher.Flush()
	}

	return nil
}

// writeSSEEvent encodes one event in the text/event-stream wire format.
// Named events carry an "event:" line; plain token frames are data-only.
func writeSSEEvent(w http.ResponseWriter, event usecase.AgentEvent) error {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return errors.Wrap(err, "marshal event data")
	}

	if event.Name != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event.Name); err != nil {
			return errors.WithStack(err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
