package middleware

import (
	"net/http"
	"strings"
)

// CORS handles cross-origin requests from the web app. Origins come from
// config; an empty list allows all origins, which is only acceptable in dev.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	allowedMethods := "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders := "Accept, Authorization, Content-Type"
	exposedHeaders := "Authorization, X-Request-Id"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originAllowed(origin, allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Expose-Headers", exposedHeaders)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
		// *.example.com matches app.example.com but not example.com.
		if strings.HasPrefix(a, "*.") {
			domain := strings.TrimPrefix(a, "*.")
			prefix, found := strings.CutSuffix(origin, domain)
			if found && strings.HasSuffix(prefix, ".") {
				return true
			}
		}
	}
	return false
}
