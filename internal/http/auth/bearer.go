package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tritogether/internal/auth"
	"tritogether/internal/domain/coaching"
)

// BearerAuthenticator verifies Authorization: Bearer tokens against the
// session token service.
type BearerAuthenticator struct {
	tokens *auth.TokenService
}

func NewBearerAuthenticator(tokens *auth.TokenService) *BearerAuthenticator {
	return &BearerAuthenticator{tokens: tokens}
}

func (a *BearerAuthenticator) Authenticate(c *gin.Context) (coaching.Principal, error) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return coaching.Principal{}, coaching.ErrUnauthorized
	}
	return a.tokens.Verify(strings.TrimSpace(header[len(prefix):]))
}
