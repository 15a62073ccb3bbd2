package settings

import (
	"context"
)

type contextKey string

const (
	settingsContextKey contextKey = "settings"
)

// IntoContext stores the run settings in ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, settingsContextKey, s)
}

// FromContext retrieves the run settings stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(settingsContextKey).(*Run)
	return s, ok
}

// FromContextOrDefault returns the stored run settings, or NewCliParams when
// none are present.
func FromContextOrDefault(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok && s != nil {
		return s
	}
	return NewCliParams()
}
