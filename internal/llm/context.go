package llm

import "context"

// Purpose labels why a model request was made. It travels on the
// context, is recorded in every event, and is filterable in `llm list`.
type Purpose string

const (
	// PurposeProbe is the connection ladder's sanity completion.
	PurposeProbe Purpose = "probe"

	// PurposeQuestionGen is a quiz question completion.
	PurposeQuestionGen Purpose = "question-gen"

	// PurposeUnknown is reported for requests whose context carries no
	// purpose. Seeing it in the event log means a call site forgot
	// WithPurpose.
	PurposeUnknown Purpose = "unknown"
)

type contextKey string

const purposeKey contextKey = "purpose"

// WithPurpose attaches a purpose to the context for event logging.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, p)
}

// PurposeFrom extracts the purpose from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
