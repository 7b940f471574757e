package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tritogether/internal/domain/coaching"
	"tritogether/internal/ratelimit"
)

type stubAuthenticator struct {
	principal coaching.Principal
	err       error
}

func (s stubAuthenticator) Authenticate(*gin.Context) (coaching.Principal, error) {
	return s.principal, s.err
}

func TestWriteErrorUsesErrorsIs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", coaching.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", coaching.ErrConflict), http.StatusConflict},
		{fmt.Errorf("wrap: %w", coaching.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", coaching.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("wrap: %w", coaching.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("wrap: %w", coaching.ErrUpstreamUnavailable), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		WriteError(c, tt.err)
		if rec.Code != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, rec.Code)
		}
	}
}

func TestWriteErrorReportsPolicyCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := coaching.Authorize(
		coaching.Principal{ID: 9, Role: coaching.RoleAthlete},
		coaching.OwnershipFacts{OwnerAthleteID: 7},
	)
	WriteError(c, err)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "NOT_OWNER") {
		t.Fatalf("expected policy code in body, got %s", body)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", AuthMiddleware(stubAuthenticator{err: coaching.ErrUnauthorized}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareStoresPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", AuthMiddleware(stubAuthenticator{principal: coaching.Principal{ID: 7, Role: coaching.RoleAthlete}}), func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": principal.ID})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "7") {
		t.Fatalf("expected principal id in body, got %s", rec.Body.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": RequestID(c)})
	})

	// echoes an incoming id
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	// mints one when absent
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("expected a generated request id")
	}
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
}

func (s stubLimiter) Allow(context.Context, string, int, time.Duration) (ratelimit.Decision, error) {
	return s.decision, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resetAt := time.Now().Add(30 * time.Second)

	newRouter := func(limiter ratelimit.RateLimiter) *gin.Engine {
		router := gin.New()
		router.POST("/signin", RateLimitMiddleware(limiter, "signin", 10, time.Minute), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	router := newRouter(stubLimiter{decision: ratelimit.Decision{Allowed: true, Limit: 10, Remaining: 9, ResetAt: resetAt}})
	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("RateLimit-Remaining") != "9" {
		t.Fatalf("expected remaining header, got %q", rec.Header().Get("RateLimit-Remaining"))
	}

	router = newRouter(stubLimiter{decision: ratelimit.Decision{Allowed: false, Limit: 10, ResetAt: resetAt}})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on rejection")
	}

	// limiter errors fail open
	router = newRouter(stubLimiter{err: errors.New("redis down")})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on limiter error, got %d", rec.Code)
	}
}

func TestParseIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := ParseIntParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, raw := range []string{"abc", "0", "-3"} {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+raw, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", raw, rec.Code)
		}
	}
}

