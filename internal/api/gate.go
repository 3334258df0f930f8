package api

import (
	"net/http"
	"slices"
	"strings"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/api/handlers"
	"github.com/go-chi/cors"
)

// AllowedOrigins are the only origins that get an Access-Control-Allow-Origin echo.
var AllowedOrigins = []string{
	"https://triet.dev",
	"https://www.triet.dev",
	"https://triet-freelancing.vercel.app",
	"http://localhost:3000",
}

// corsMethods lists every verb for which cors echoes the origin. The gate
// advertises only the endpoint's own verb, but a rejected verb still needs
// the echo so the browser can read the 405 body.
var corsMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

// isAllowedOrigin is an exact, case-sensitive match.
func isAllowedOrigin(_ *http.Request, origin string) bool {
	return slices.Contains(AllowedOrigins, origin)
}

// endpointGate runs in front of every endpoint. It echoes allowed origins,
// sets the fixed CORS headers, answers OPTIONS with an empty 200 and rejects
// any verb other than method with 405. Nothing behind it runs when it
// short-circuits.
func endpointGate(method string, allowHeaders ...string) func(http.Handler) http.Handler {
	allowMethods := method + ", " + http.MethodOptions
	allowHeaderList := strings.Join(allowHeaders, ", ")

	originEcho := cors.Handler(cors.Options{
		AllowOriginFunc:    isAllowedOrigin,
		AllowedMethods:     corsMethods,
		AllowedHeaders:     allowHeaders,
		AllowCredentials:   true,
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		gate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaderList)
			h.Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			if r.Method != method {
				handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
		return originEcho(gate)
	}
}
