package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health": true,
}

// EventTrackingMiddleware publishes one analytics event per successful admin request.
func EventTrackingMiddleware(publisher gateways.EventPublisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publisher == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/admin/plans" -> "api_v1_admin_plans"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.NewReplacer("/", "_", ":", "").Replace(eventName)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if requestID := GetRequestIDFromCtx(c.Request.Context()); requestID != "" {
			props["request_id"] = requestID
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		publisher.Publish(c.Request.Context(), userID, eventName, props)
	}
}
