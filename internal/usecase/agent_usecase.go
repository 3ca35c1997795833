package usecase

import (
	"context"

	"taskops/internal/domain/entity"
)

// --- Input DTOs ---

// RunAgentInput defines the data required to start an agent run.
type RunAgentInput struct {
	Prompt string
}

// AgentEvent is a single server-sent event emitted during an agent run.
// Name is empty for plain token frames.
type AgentEvent struct {
	Name string
	Data map[string]any
}

// AgentUsecase defines the interface for agent execution.
// Run returns a channel of events; the channel is closed when the run
// finishes or the context is cancelled.
type AgentUsecase interface {
	Run(ctx context.Context, user *entity.User, input *RunAgentInput) (<-chan AgentEvent, error)
}
