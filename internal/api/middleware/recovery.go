package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/fntrack/fntrack/internal/api/response"
)

// Recovery middleware catches panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v\n%s", err, debug.Stack())
				response.JSON(w, http.StatusInternalServerError, response.ErrorResponse{
					Error: response.ErrorBody{Code: "internal_error", Message: "internal server error"},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
