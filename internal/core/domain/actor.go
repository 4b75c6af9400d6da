package domain

import "context"

type actorKey struct{}

// WithActor returns a context carrying the name of the user acting.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFromContext returns the acting user, or "" if none was set.
func ActorFromContext(ctx context.Context) string {
	name, _ := ctx.Value(actorKey{}).(string)
	return name
}
