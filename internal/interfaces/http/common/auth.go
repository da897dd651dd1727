package common

import "context"

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser is the reviewer behind a verified bearer token. ID is the token subject
// and keys the reviewer's dashboard, so two sessions of one reviewer share filter and selection.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

// ContextWithUser stores the reviewer for the admin handlers.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext returns the reviewer. A user without a subject counts as absent,
// since it could not own a dashboard.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok && user.ID != ""
}
