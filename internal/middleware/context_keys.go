package middleware

import "context"

// userIDKey stores the authenticated clerk's identifier.
const userIDKey = contextKey("userID")

// tenantKey stores the tenant tag decoded from the auth token.
const tenantKey = contextKey("tenant")

// GetUserIDFromContext retrieves the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetTenantFromContext retrieves the tenant tag from the context.
func GetTenantFromContext(ctx context.Context) (string, bool) {
	tenant, ok := ctx.Value(tenantKey).(string)
	return tenant, ok && tenant != ""
}

// ContextWithIdentity stores the user ID and tenant in the context. Exposed for
// tests and for the worker pool which executes outside the request lifecycle.
func ContextWithIdentity(ctx context.Context, userID, tenant string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tenantKey, tenant)
}
