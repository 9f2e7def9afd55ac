// Package auth covers credentials and login sessions: bcrypt password
// hashing, signed session tokens, temporary credential generation, and the
// middleware that resolves a session back to an employee.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greentech-systems/greenhouse-server/internal/database"
)

const SessionCookieName = "greenhouse_session"

var ErrNoSessionToken = errors.New("session token not found")

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// PasswordCorrect reports whether the password matches the stored hash.
func PasswordCorrect(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// passwordAlphabet covers ASCII letters, digits, and punctuation.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// GeneratePassword returns a random temporary password of the given length.
func GeneratePassword(length int) (string, error) {
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		password[i] = passwordAlphabet[n.Int64()]
	}

	return string(password), nil
}

// GenerateCompanyID returns a candidate company id of the form GT followed by
// six digits. Uniqueness against existing employees is the caller's concern.
func GenerateCompanyID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("GT%d", 100000+n.Int64()), nil
}

// SessionClaims are the JWT claims carried by a login session. The subject
// is the employee id.
type SessionClaims struct {
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// EmployeeID returns the numeric subject of the session.
func (c *SessionClaims) EmployeeID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Sessions issues and validates signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// CreateToken issues a signed session token for the employee.
func (s *Sessions) CreateToken(employee database.Employee) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		Name:  employee.Name,
		Admin: employee.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(employee.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a session token and returns its claims.
func (s *Sessions) ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// TokenFromRequest finds the session token in the session cookie, the
// Authorization header, or a token query parameter, in that order. The query
// parameter exists for websocket clients that cannot set headers.
func TokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoSessionToken
}

// SetSessionCookie stores the session token in an HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SafeNextTarget returns target when it is a local path and fallback
// otherwise, so a crafted next parameter cannot redirect off-site.
func SafeNextTarget(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}

	return fallback
}
