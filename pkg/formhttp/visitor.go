package formhttp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

const minSecretLength = 32

type visitorKey struct{}

// VisitorFromContext returns the visitor id resolved by the visitor middleware.
func VisitorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// VisitorExtractor adds visitor_id to log records, for logger.WithContextExtractors.
func VisitorExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := VisitorFromContext(ctx); id != "" {
			return slog.String("visitor_id", id), true
		}
		return slog.Attr{}, false
	}
}

// visitors issues and verifies the visitor cookie. With a secret the cookie
// is "<uuid>.<hmac>"; without one it is the bare uuid.
type visitors struct {
	name   string
	secret []byte
	secure bool
	maxAge int
}

func newVisitors(cfg Config) (*visitors, error) {
	if cfg.CookieSecret != "" && len(cfg.CookieSecret) < minSecretLength {
		return nil, ErrSecretTooShort
	}
	name := cfg.VisitorCookie
	if name == "" {
		name = "visitor_id"
	}
	v := &visitors{name: name, secure: cfg.CookieSecure, maxAge: cfg.CookieMaxAge}
	if cfg.CookieSecret != "" {
		v.secret = []byte(cfg.CookieSecret)
	}
	return v, nil
}

func (v *visitors) sign(id string) string {
	if v.secret == nil {
		return id
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (v *visitors) verify(value string) (string, error) {
	id := value
	if v.secret != nil {
		var sig string
		var ok bool
		id, sig, ok = strings.Cut(value, ".")
		if !ok {
			return "", errInvalidVisitor
		}
		mac := hmac.New(sha256.New, v.secret)
		mac.Write([]byte(id))
		expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
			return "", errInvalidVisitor
		}
	}
	if err := uuid.Validate(id); err != nil {
		return "", errInvalidVisitor
	}
	return id, nil
}

// middleware resolves the visitor from the cookie, issuing a fresh id when the
// cookie is missing or does not verify.
func (v *visitors) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(v.name); err == nil {
			id, _ = v.verify(c.Value)
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     v.name,
				Value:    v.sign(id),
				Path:     "/",
				MaxAge:   v.maxAge,
				Secure:   v.secure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}

// visitorStore namespaces the store per visitor, so records and theme
// preferences never leak between browsers.
func (s *Service) visitorStore(ctx context.Context) (kvstore.Store, error) {
	id := VisitorFromContext(ctx)
	if id == "" {
		return nil, errMissingVisitor
	}
	return kvstore.Prefixed(s.store, "visitor:"+id), nil
}
