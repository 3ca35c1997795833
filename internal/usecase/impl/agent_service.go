package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskops/internal/domain/entity"
	"taskops/internal/usecase"
)

const (
	agentEventTaskStart = "task_start"
	agentEventTaskEnd   = "task_end"

	// Delay between token frames so the stream is observably incremental.
	agentTokenInterval = 50 * time.Millisecond
)

// agentService implements the AgentUsecase interface. It simulates an agent
// run by streaming the prompt back word by word; a real planner/executor can
// replace the goroutine body without touching the delivery layer.
type agentService struct {
	logger *slog.Logger
}

// NewAgentService is the constructor for agentService.
func NewAgentService(logger *slog.Logger) usecase.AgentUsecase {
	return &agentService{logger: logger}
}

// Run starts a simulated agent run and returns the event stream. The channel
// is closed when the run completes or ctx is cancelled, whichever comes first.
func (srv *agentService) Run(ctx context.Context, user *entity.User, input *usecase.RunAgentInput) (<-chan usecase.AgentEvent, error) {
	srv.logger.Info("Starting agent run", "userID", user.ID, "promptLength", len(input.Prompt))

	message := fmt.Sprintf("Simulating execution for prompt '%s' on behalf of user %s", input.Prompt, user.Email)
	events := make(chan usecase.AgentEvent)

	go func() {
		defer close(events)

		if !srv.emit(ctx, events, usecase.AgentEvent{
			Name: agentEventTaskStart,
			Data: map[string]any{"status": "started"},
		}) {
			return
		}

		for _, word := range strings.Fields(message) {
			select {
			case <-ctx.Done():
				srv.logger.Debug("Agent run cancelled", "userID", user.ID)

				return
			case <-time.After(agentTokenInterval):
			}

			if !srv.emit(ctx, events, usecase.AgentEvent{
				Data: map[string]any{"token": word + " "},
			}) {
				return
			}
		}

		srv.emit(ctx, events, usecase.AgentEvent{
			Name: agentEventTaskEnd,
			Data: map[string]any{"status": "completed"},
		})
		srv.logger.Debug("Agent run completed", "userID", user.ID)
	}()

	return events, nil
}

// emit sends one event unless the context is already cancelled. It reports
// whether the run should keep going.
func (srv *agentService) emit(ctx context.Context, events chan<- usecase.AgentEvent, event usecase.AgentEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case events <- event:
		return true
	}
}
