package middleware

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

const (
	sessionName = "urevents_session"
	adminKey    = "admin"
)

func LoggingMiddleware() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		start := time.Now()
		c.Next()
		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// SessionMiddleware mounts the cookie-backed session store every handler
// reads the admin flag and flash messages from.
func SessionMiddleware(secret string) ginext.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
	})
	return sessions.Sessions(sessionName, store)
}

// RequireAdmin guards every admin-scoped route. An anonymous visitor is
// redirected to the login entry point, never served an error payload.
func RequireAdmin() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if !IsAdmin(c) {
			c.Redirect(302, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IsAdmin(c *ginext.Context) bool {
	v := sessions.Default(c).Get(adminKey)
	flag, ok := v.(bool)
	return ok && flag
}

func SetAdmin(c *ginext.Context) error {
	s := sessions.Default(c)
	s.Set(adminKey, true)
	return s.Save()
}

// ClearSession wipes all session state, not just the admin flag. Safe to
// call on an already-anonymous session.
func ClearSession(c *ginext.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

func AddFlash(c *ginext.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg)
	return s.Save()
}

// Flashes returns pending flash messages and clears them, so each one is
// shown at most once.
func Flashes(c *ginext.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
