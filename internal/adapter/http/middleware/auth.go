// Package middleware holds the gin middlewares shared by the v1 routes.
package middleware

import (
	"errors"
	"fmt"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/pkg"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	ctxActorID = "actor_id"
	ctxRole    = "actor_role"
)

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid token", http.StatusUnauthorized)
	errTokenExpired = pkg.NewDomainErrorSimple("TOKEN_EXPIRED", "Token expired", http.StatusUnauthorized)
	errRoleDenied   = pkg.NewDomainErrorSimple("FORBIDDEN", "Role not allowed for this operation", http.StatusForbidden)
)

// Claims is the identity carried by the bearer token.
type Claims struct {
	UserID string
	Role   entities.Role
}

// TokenParser validates HMAC-signed tokens issued by the account service.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{secret: []byte(secret)}
}

// Parse accepts the raw Authorization header value or the bare token.
func (p *TokenParser) Parse(header string) (Claims, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
	if tokenString == "" {
		return Claims{}, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, _ := mc["user_id"].(string)
	role, _ := mc["role"].(string)
	claims := Claims{
		UserID: strings.TrimSpace(userID),
		Role:   entities.Role(strings.ToUpper(strings.TrimSpace(role))),
	}
	if claims.UserID == "" || !claims.Role.IsValid() {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Auth rejects requests without a valid bearer token and stores the actor
// in the gin context.
func Auth(parser *TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parser.Parse(c.GetHeader("Authorization"))
		if err != nil {
			appErr := errUnauthorized
			if errors.Is(err, ErrExpiredToken) {
				appErr = errTokenExpired
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set(ctxActorID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRoles must run after Auth.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(errRoleDenied.HTTPStatus, errRoleDenied.ToHTTPError())
	}
}

func ActorID(c *gin.Context) string {
	return c.GetString(ctxActorID)
}

func Role(c *gin.Context) entities.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(entities.Role); ok {
			return r
		}
	}
	return ""
}

// SetActor is used by tests and internal callers that authenticate elsewhere.
func SetActor(c *gin.Context, userID string, role entities.Role) {
	c.Set(ctxActorID, userID)
	c.Set(ctxRole, role)
}
