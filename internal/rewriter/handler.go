package rewriter

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type refineRequest struct {
	Message string `json:"message"`
}

// Handler serves POST <functions>/refine-message. When publicKey is set the
// request must carry it as a bearer token.
func Handler(rw Rewriter, publicKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publicKey != "" {
			token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(publicKey)) != 1 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
		}

		var req refineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		message := strings.TrimSpace(req.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		refined, err := rw.Rewrite(c.Request.Context(), message)
		if err != nil {
			log.Printf("Error rewriting message: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refine message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"refinedMessage": refined})
	}
}
