package http

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/cors"
)

// withCORS applies the configured origin whitelist. Entries may contain `*`
// wildcard segments ("https://*.vercel.app"); an empty whitelist allows
// every origin, which suits a console deployed behind its own ingress.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	if len(h.cfg.AllowedOrigins) == 0 {
		options.AllowOriginFunc = func(string) bool { return true }
	} else {
		patterns := compileOriginPatterns(h.cfg.AllowedOrigins)
		options.AllowOriginFunc = func(origin string) bool {
			for _, p := range patterns {
				if p.MatchString(origin) {
					return true
				}
			}
			return false
		}
	}

	return cors.New(options).Handler(next)
}

// compileOriginPatterns turns whitelist entries into anchored regular
// expressions, with each `*` matching exactly one host label.
func compileOriginPatterns(origins []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(origins))
	for _, origin := range origins {
		quoted := regexp.QuoteMeta(strings.TrimSpace(origin))
		expr := "^" + strings.ReplaceAll(quoted, `\*`, `[^.]+`) + "$"

		pattern, err := regexp.Compile(expr)
		if err != nil {
			// QuoteMeta makes entries compile-safe; skip just in case
			continue
		}
		patterns = append(patterns, pattern)
	}
	return patterns
}
