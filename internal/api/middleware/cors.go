package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS allows browser clients on other origins to call the API and read
// the attachment headers on history exports.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})
	return func(ctx *gin.Context) {
		// Preflight requests are answered entirely by the CORS handler.
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			c.HandlerFunc(ctx.Writer, ctx.Request)
			ctx.Abort()
			return
		}
		c.HandlerFunc(ctx.Writer, ctx.Request)
		ctx.Next()
	}
}
