package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Event is one recorded model request, consumed by the event store.
type Event struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventSink receives model request events. Implemented by the SQLite
// store; a nil sink disables logging.
type EventSink interface {
	AppendLLMEvent(ctx context.Context, e Event) error
}

// LoggingProvider is a decorator that records every model request as an
// event. Logging failures never fail the request.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
}

// WithLogging wraps a Provider with event logging. provider is the
// backend name recorded in events. A nil sink returns the provider
// unwrapped.
func WithLogging(p Provider, provider string, sink EventSink) Provider {
	if sink == nil {
		return p
	}
	return &LoggingProvider{inner: p, provider: provider, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	e := Event{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   string(PurposeFrom(ctx)),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		e.InputTokens = resp.Usage.InputTokens
		e.OutputTokens = resp.Usage.OutputTokens
		e.Model = resp.Model
	}
	if err != nil {
		e.ErrorMessage = err.Error()
	}

	if logErr := l.sink.AppendLLMEvent(ctx, e); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log model request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
