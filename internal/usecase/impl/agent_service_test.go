package impl

import (
	"context"
	"testing"
	"time"

	"taskops/internal/domain/entity"
	"taskops/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectAgentEvents(t *testing.T, events <-chan usecase.AgentEvent) []usecase.AgentEvent {
	t.Helper()

	var collected []usecase.AgentEvent
	timeout := time.After(10 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, event)
		case <-timeout:
			t.Fatal("timed out waiting for the agent stream to close")
		}
	}
}

func TestAgentService_Run(t *testing.T) {
	t.Parallel()

	service := NewAgentService(discardLogger())
	user := &entity.User{ID: uuid.New(), Email: "runner@example.com"}

	events, err := service.Run(context.Background(), user, &usecase.RunAgentInput{Prompt: "build the report"})
	require.NoError(t, err)

	collected := collectAgentEvents(t, events)
	require.GreaterOrEqual(t, len(collected), 3)

	first := collected[0]
	last := collected[len(collected)-1]
	assert.Equal(t, "task_start", first.Name)
	assert.Equal(t, "started", first.Data["status"])
	assert.Equal(t, "task_end", last.Name)
	assert.Equal(t, "completed", last.Data["status"])

	// Everything in between is an unnamed token frame carrying one word.
	var streamed string
	for _, event := range collected[1 : len(collected)-1] {
		assert.Empty(t, event.Name)
		token, ok := event.Data["token"].(string)
		require.True(t, ok)
		streamed += token
	}
	assert.Contains(t, streamed, "build the report")
	assert.Contains(t, streamed, user.Email)
}

func TestAgentService_Run_Cancelled(t *testing.T) {
	t.Parallel()

	service := NewAgentService(discardLogger())
	user := &entity.User{ID: uuid.New(), Email: "runner@example.com"}

	ctx, cancel := context.WithCancel(context.Background())
	events, err := service.Run(ctx, user, &usecase.RunAgentInput{Prompt: "a very long prompt with many words to stream"})
	require.NoError(t, err)

	// Consume the start event, then cancel mid-stream.
	<-events
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// At most one in-flight event may still arrive; the next receive
			// must observe the closed channel.
			_, stillOpen := <-events
			assert.False(t, stillOpen)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("agent stream did not close after cancellation")
	}
}
