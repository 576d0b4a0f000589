package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/DrivingSchool-BookingService/internal/api/handlers"
	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
)

// ErrBadToken возвращается для невалидного токена
var ErrBadToken = errors.New("middleware: invalid token")

// Claims данные пользователя в JWT
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// только HMAC, защита от подмены алгоритма
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	if c.UserID <= 0 || !domain.Role(c.Role).IsValid() {
		return nil, fmt.Errorf("%w: missing uid or role", ErrBadToken)
	}
	return c, nil
}

// Auth проверяет заголовок Authorization: Bearer <jwt>
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				logger.Warn("Auth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "")
				return
			}

			claims, err := ParseToken(strings.TrimSpace(raw), secret)
			if err != nil {
				logger.Warn("Auth: rejected token: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "")
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, domain.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только пользователей с указанной ролью
// Должен стоять после Auth
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual, ok := GetRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "")
				return
			}
			if actual != role {
				handlers.RespondForbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
