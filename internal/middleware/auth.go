package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName — cookie с токеном, выставляемая при входе.
const AuthCookieName = "auth_token"

type ctxKey int

const loginKey ctxKey = iota

// ErrInvalidToken — подпись, срок или формат токена неверны.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken подписывает HS256-токен с логином в sub.
func IssueToken(login, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken проверяет подпись и срок действия и возвращает логин.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// SetLoginCookie выпускает токен и кладёт его в cookie.
func SetLoginCookie(w http.ResponseWriter, login, secret string, ttl time.Duration) (string, time.Time, error) {
	token, exp, err := IssueToken(login, secret, ttl)
	if err != nil {
		return "", time.Time{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, exp, nil
}

// WithAuth кладёт в контекст логин из валидного токена.
// Токен берётся из заголовка Authorization: Bearer, затем из cookie.
// Отсутствие или невалидность токена запрос не прерывает.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if c, err := r.Cookie(AuthCookieName); err == nil {
					token = c.Value
				}
			}
			if token != "" {
				if login, err := ParseToken(token, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), loginKey, login))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetLoginFromContext возвращает логин, положенный WithAuth.
func GetLoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(loginKey).(string)
	return login, ok && login != ""
}

// UserLookup сообщает, существует ли включённый пользователь с таким логином.
type UserLookup func(ctx context.Context, login string) (bool, error)

// RequireUser пропускает запрос только с валидным токеном действующего пользователя.
func RequireUser(lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login, ok := GetLoginFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			active, err := lookup(r.Context(), login)
			if err != nil {
				sugar.Errorw("user lookup failed", "login", login, "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			if !active {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "unauthorized", "could not validate credentials")
}
