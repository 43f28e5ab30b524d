package rewriter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/shyamraj/portfolio/internal/refiner"
)

// CORS lets browsers on other origins call the function directly, the way
// they would call a hosted one. No origins means any origin.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Apikey", "X-Client-Info"},
		MaxAge:         300,
	})

	return func(c *gin.Context) {
		passed := false
		handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		// Preflight requests are answered by the cors handler itself.
		if !passed {
			c.Abort()
		}
	}
}

// Register mounts the function at <r>/refine-message behind CORS.
func Register(r gin.IRouter, rw Rewriter, publicKey string, origins []string) {
	fn := r.Group("", CORS(origins))
	fn.OPTIONS(refiner.Path, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	fn.POST(refiner.Path, Handler(rw, publicKey))
}
