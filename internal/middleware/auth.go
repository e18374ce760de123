package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ServiceAuthMiddleware validates the bearer token presented by a calling
// service. Tokens are HMAC-signed JWTs whose subject identifies the caller
// (e.g. "pricing-service"); the subject is stored in the request context for
// audit stamping.
func ServiceAuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		options := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
		if issuer != "" {
			options = append(options, jwt.WithIssuer(issuer))
		}
		token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		}, options...)
		if err != nil {
			logger.Warn("Invalid service token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			logger.Error("Caller identity (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("caller", claims.Subject))
		ctx := context.WithValue(c.Request.Context(), callerIDKey, claims.Subject)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCallerFromContext returns the authenticated caller id set by
// ServiceAuthMiddleware.
func GetCallerFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(callerIDKey)
	if v == nil {
		return "", false
	}
	caller, ok := v.(string)
	return caller, ok
}
