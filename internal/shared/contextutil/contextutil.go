package contextutil

import "context"

type contextKey string

const actorKey contextKey = "actor_id"

// SystemActor is the identity recorded when no caller identity was supplied
// (batch jobs, scheduled generation).
const SystemActor = "system"

func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}

// Actor returns the caller identity from the context, falling back to
// SystemActor when none was set.
func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok && v != "" {
		return v
	}
	return SystemActor
}
