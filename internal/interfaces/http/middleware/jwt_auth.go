package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	appservice "github.com/openkyc/kyc/internal/application/service"
	"github.com/openkyc/kyc/internal/domain/service"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// extractBearer pulls the token out of an Authorization header.
func extractBearer(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth verifies the session token and stores the authenticated actor
// on the request context, where the application services read it.
func RequireAuth(tokens service.TokenManager, log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth_middleware")
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.GetHeader("Authorization"))
		if tokenStr == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			log.Warn(c.Request.Context(), "session token rejected", logger.Fields{
				"client_ip": c.ClientIP(),
			})
			abortUnauthorized(c, "invalid or expired session token")
			return
		}

		actor := appservice.Actor{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}
		c.Request = c.Request.WithContext(appservice.ContextWithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.ErrorResponse(apperrors.ErrUnauthorized(message), TraceIDFrom(c.Request.Context())))
}
