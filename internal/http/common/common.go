package common

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tritogether/internal/domain/coaching"
	"tritogether/internal/ratelimit"
)

const (
	principalKey = "principal"
	requestIDKey = "request_id"
)

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Authenticator interface {
	Authenticate(*gin.Context) (coaching.Principal, error)
}

// AuthMiddleware resolves the bearer token into a principal and stores it
// on the request context. Authorization itself happens in the services.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticator == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "auth misconfigured"})
			return
		}
		principal, err := authenticator.Authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication failed"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequestIDMiddleware echoes the incoming X-Request-ID or mints one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RateLimitMiddleware applies a fixed window limit keyed by client IP and
// route. Limiter errors fail open.
func RateLimitMiddleware(limiter ratelimit.RateLimiter, routeID string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP() + ":endpoint:" + routeID
		decision, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}
		writeRateLimitHeaders(c, decision)
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Code: "RATE_LIMITED", Message: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func writeRateLimitHeaders(c *gin.Context, decision ratelimit.Decision) {
	if decision.Limit > 0 {
		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	}
	if decision.Remaining >= 0 {
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if !decision.ResetAt.IsZero() {
		c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		if !decision.Allowed {
			retryAfter := int64(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		}
	}
}

func PrincipalFromContext(c *gin.Context) (coaching.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "principal missing")
		return coaching.Principal{}, false
	}
	principal, ok := value.(coaching.Principal)
	if !ok {
		WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "principal invalid")
		return coaching.Principal{}, false
	}
	return principal, true
}

func RequestID(c *gin.Context) string {
	if value, ok := c.Get(requestIDKey); ok {
		if requestID, ok := value.(string); ok {
			return requestID
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Request-ID"))
}

func ParseIntParam(c *gin.Context, name string) (int, bool) {
	value := strings.TrimSpace(c.Param(name))
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func WriteError(c *gin.Context, err error) {
	if policy, ok := coaching.IsPolicyError(err); ok {
		WriteErrorCode(c, http.StatusForbidden, policy.Code, "forbidden")
		return
	}
	switch {
	case errors.Is(err, coaching.ErrUnauthorized):
		WriteErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	case errors.Is(err, coaching.ErrForbidden):
		WriteErrorCode(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, coaching.ErrNotFound):
		WriteErrorCode(c, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, coaching.ErrConflict):
		WriteErrorCode(c, http.StatusConflict, "CONFLICT", "conflict")
	case errors.Is(err, coaching.ErrInvalidInput):
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid input")
	case errors.Is(err, coaching.ErrUpstreamUnavailable):
		WriteErrorCode(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", "upstream unavailable")
	default:
		WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func WriteErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
