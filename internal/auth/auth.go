// Package auth resolves bearer tokens to users.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/finansmart/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrMissingToken = errors.New("no bearer token in the Authorization header")
	ErrInvalidToken = errors.New("the bearer token is invalid")
)

// userKey is the key of the authenticated user in the gin context.
const userKey = "finansmart-user"

// Verifier verifies a token and returns the identity it was issued for.
type Verifier interface {
	Verify(token string) (models.Identity, error)
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HMACVerifier verifies tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	issuer string
}

// NewHMACVerifier returns a verifier for tokens signed with secret. If issuer
// is not empty, the iss claim of the tokens must match it.
func NewHMACVerifier(secret, issuer string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Verify parses the token and checks its signature and claims.
//
// Tokens must carry a subject, an email and an expiry time.
func (v *HMACVerifier) Verify(token string) (models.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}

	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if c.Subject == "" || c.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: subject and email are required", ErrInvalidToken)
	}

	return models.Identity{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
	}, nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: use the format 'Bearer <token>'", ErrMissingToken)
	}

	return strings.TrimSpace(token), nil
}

// Middleware authenticates requests with the bearer token of the request.
//
// The user for the identity of the token is created on its first request.
func Middleware(verifier Verifier, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			log.Debug().Err(err).Msg("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		user, err := models.FindOrCreateUser(db.WithContext(c.Request.Context()), identity)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, models.ErrUniqueViolation) {
				status = http.StatusConflict
			}

			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user of the request.
func UserFrom(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}

	user, ok := v.(models.User)
	return user, ok
}
