// Package service implements the application use cases. Each service method
// is one operation: it authorizes the caller, runs the domain logic through
// the repositories, and records the outcome on the audit trail.
package service

import (
	"context"

	"github.com/openkyc/kyc/pkg/constants"
)

// Actor is the authenticated identity performing an operation, extracted from
// the request context by the auth middleware.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// ActorFromContext reads the authenticated actor from the context. The zero
// Actor (empty role) fails every permission check, so a missing identity
// degrades to denial rather than error.
func ActorFromContext(ctx context.Context) Actor {
	actor := Actor{}
	if v, ok := ctx.Value(constants.ContextKeyUserID).(string); ok {
		actor.UserID = v
	}
	if v, ok := ctx.Value(constants.ContextKeyUsername).(string); ok {
		actor.Username = v
	}
	if v, ok := ctx.Value(constants.ContextKeyUserRole).(string); ok {
		actor.Role = v
	}
	return actor
}

// ContextWithActor returns a context carrying the actor's identity. Used by
// the auth middleware and by tests.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constants.ContextKeyUserID, actor.UserID)
	ctx = context.WithValue(ctx, constants.ContextKeyUsername, actor.Username)
	ctx = context.WithValue(ctx, constants.ContextKeyUserRole, actor.Role)
	return ctx
}
