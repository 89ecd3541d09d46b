package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalContextKey = "principal"

var ErrInvalidToken = errors.New("invalid token")

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier validates identity-provider tokens signed with a shared HS256 secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(tokenString string) (Principal, error) {
	if len(v.secret) == 0 {
		return Principal{}, fmt.Errorf("%w: verifier has no secret configured", ErrInvalidToken)
	}
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return Principal{}, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return Principal{Email: claims.Email}, nil
}

// IssueToken signs a token carrying email. Used by tests and local tooling.
func (v *TokenVerifier) IssueToken(email string, claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{Email: email, RegisteredClaims: claims})
	return token.SignedString(v.secret)
}

// Middleware resolves the bearer token into a Principal and rejects requests
// that are not made by the admin.
func Middleware(v *TokenVerifier, authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		principal, err := v.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid"})
			return
		}
		if err := authz.RequireAdmin(principal); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// SetPrincipal attaches p to both the gin context and the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalContextKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// CurrentPrincipal returns the principal stored by Middleware.
func CurrentPrincipal(c *gin.Context) Principal {
	if v, ok := c.Get(principalContextKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	p, _ := PrincipalFrom(c.Request.Context())
	return p
}
