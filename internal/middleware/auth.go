package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mines3d/server/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth parses the auth cookies into player claims and stashes them on the
// request context. Requests with missing or invalid cookies proceed as
// anonymous; stale cookies get cleared on the way out.
func Auth(log *slog.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				if r.Header.Get("Cookie") != "" {
					log.Debug("could not parse player claims", slog.Any("error", err))
					cookies.Clear(w)
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
