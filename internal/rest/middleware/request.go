package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentfolio/rentfolio/internal/types"
)

// RequestContext seeds the request context with the tenant, user and request
// IDs every downstream layer reads. Tenant and user come from headers until
// an auth layer fronts this service; absent headers fall back to the
// single-tenant defaults.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(types.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = types.DefaultTenantID
		}
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = types.DefaultUserID
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
		ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(types.HeaderRequestID, requestID)
		c.Next()
	}
}
