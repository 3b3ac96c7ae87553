package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Request purposes recorded with every logged call.
const (
	PurposeQuestionGen = "question-gen"
	PurposePreview     = "preview"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label attached to ctx, or "".
func PurposeFrom(ctx context.Context) string {
	v, _ := ctx.Value(purposeKey).(string)
	return v
}
