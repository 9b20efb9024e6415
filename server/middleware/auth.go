package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/onion/errors"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator func(token string) (map[string]any, error)

// ClaimsKey is the Gin context key holding the validated token claims.
const ClaimsKey = "auth.claims"

// AuthConfig configures the Auth middleware.
type AuthConfig struct {
	TokenValidator TokenValidator
	// SkipPaths are path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth rejects requests without a valid bearer token with 401. Validated
// claims are stored in the Gin context under ClaimsKey.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, skip) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := cfg.TokenValidator(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Claims returns the claims stored by Auth.
func Claims(c *gin.Context) (map[string]any, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(map[string]any)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, reason string) {
	appErr := errors.Unauthorized(reason)
	c.AbortWithStatusJSON(appErr.HTTPStatus(), appErr.ToResponse())
}

// JWTValidator returns a TokenValidator accepting HS256 tokens signed with
// secret. Issuer and audience are checked when non-empty; expiry is always
// checked when present.
func JWTValidator(secret, issuer, audience string) (TokenValidator, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret is required")
	}
	key := []byte(secret)
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	}
	if issuer != "" {
		opts = append(opts, gojwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, gojwt.WithAudience(audience))
	}
	parser := gojwt.NewParser(opts...)

	return func(token string) (map[string]any, error) {
		claims := gojwt.MapClaims{}
		if _, err := parser.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
			return key, nil
		}); err != nil {
			return nil, fmt.Errorf("jwt: parse token: %w", err)
		}
		return claims, nil
	}, nil
}
