// internal/auth/service.go
//
// JWT issue/parse, auth cookies, the anonymous player cookie and the
// optional/required auth middleware.
//
// Notes:
//   - Tokens are HS256 with id/username claims.
//   - Optional auth never rejects; it only decorates the request context.
//   - Cookies are Secure + SameSite=None in production, Lax otherwise.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const anonCookieName = "wordconnect_anon"

// Options configure a Service.
type Options struct {
	Secret      string
	ExpiresDays int
	CookieName  string
	Secure      bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service bundles account storage and token handling.
type Service struct {
	db         *sql.DB
	secret     []byte
	expires    time.Duration
	cookieName string
	secure     bool
	bcryptCost int
}

// NewService builds a Service over db.
func NewService(db *sql.DB, o Options) *Service {
	if o.ExpiresDays <= 0 {
		o.ExpiresDays = 14
	}
	if o.CookieName == "" {
		o.CookieName = "wordconnect_token"
	}
	if o.BcryptCost == 0 {
		o.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		db:         db,
		secret:     []byte(o.Secret),
		expires:    time.Duration(o.ExpiresDays) * 24 * time.Hour,
		cookieName: o.CookieName,
		secure:     o.Secure,
		bcryptCost: o.BcryptCost,
	}
}

// Identity is placed into the request context by the middleware.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

// FromContext returns the signed-in identity, or nil for guests.
func FromContext(ctx context.Context) *Identity {
	me, _ := ctx.Value(ctxUserKey{}).(*Identity)
	return me
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, id)
}

// SignJWT creates a token for the user and returns its expiry.
func (s *Service) SignJWT(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.expires)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

var errInvalidToken = errors.New("invalid token")

// ParseToken verifies tokenStr and returns its identity claims.
func (s *Service) ParseToken(tokenStr string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return nil, errInvalidToken
	}
	return &Identity{ID: id, Username: username}, nil
}

// Optional decorates requests with the identity when a valid token for an
// existing user is present. It never rejects.
func (s *Service) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := s.bearerOrCookie(r); tok != "" {
				if me, err := s.ParseToken(tok); err == nil {
					if _, err := s.FindByID(r.Context(), me.ID); err == nil {
						r = r.WithContext(WithIdentity(r.Context(), me))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require enforces a valid token for an existing user.
func (s *Service) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.bearerOrCookie(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			me, err := s.ParseToken(tok)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			// Ensure user still exists
			if _, err := s.FindByID(r.Context(), me.ID); err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), me)))
		})
	}
}

// SetAuthCookie writes the auth token cookie.
func (s *Service) SetAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, s.cookie(s.cookieName, token, exp, 0))
}

// ClearAuthCookie deletes the auth token cookie.
func (s *Service) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(s.cookieName, "", time.Time{}, -1))
}

// EnsureAnonID returns the anonymous player id from its cookie, setting a
// new one when missing. Guest games and results are keyed by it.
func (s *Service) EnsureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := GenID()
	http.SetCookie(w, s.cookie(anonCookieName, id, time.Now().Add(180*24*time.Hour), 0))
	return id
}

// PlayerID is the signed-in user id, or the anonymous id for guests.
func (s *Service) PlayerID(w http.ResponseWriter, r *http.Request) string {
	if me := FromContext(r.Context()); me != nil {
		return me.ID
	}
	return s.EnsureAnonID(w, r)
}

func (s *Service) cookie(name, value string, exp time.Time, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	}
}

// bearerOrCookie extracts a bearer token from the Authorization header or
// the auth cookie.
func (s *Service) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookieName); err == nil {
		return c.Value
	}
	return ""
}
