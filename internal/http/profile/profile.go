// Package profile resolves the calling profile from the profile_id request header.
package profile

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MrJamesThe3rd/marketplace/internal/http/render"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

const Header = "profile_id"

type Finder interface {
	FindProfile(ctx context.Context, id int64) (*ledger.Profile, error)
}

type ctxKey struct{}

func WithProfile(ctx context.Context, p *ledger.Profile) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (*ledger.Profile, bool) {
	p, ok := ctx.Value(ctxKey{}).(*ledger.Profile)
	return p, ok && p != nil
}

// Middleware rejects requests whose profile_id header is missing or unknown.
func Middleware(f Finder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(Header)
			if raw == "" {
				render.Unauthorized(w, "missing profile_id header")
				return
			}

			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				render.Unauthorized(w, "invalid profile_id header")
				return
			}

			p, err := f.FindProfile(r.Context(), id)
			if err != nil {
				if errors.Is(err, ledger.ErrNotFound) {
					render.Unauthorized(w, "unknown profile")
					return
				}

				render.Error(w, r, ledger.Internal(err))

				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
		})
	}
}
