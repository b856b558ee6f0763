package auth

import "context"

type contextKey string

const contextKeyClaims contextKey = "auth.claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

// ClaimsFromContext returns the agent claims stored by AgentMiddleware, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if ctx == nil {
		return nil
	}
	claims, _ := ctx.Value(contextKeyClaims).(*Claims)
	return claims
}
