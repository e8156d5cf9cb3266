package routes

import (
	"lana-app/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registra los endpoints públicos de autenticación.
// Ninguno pasa por el middleware de token.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/logout", handlers.LogoutHandler)
		auth.POST("/forgot-password", handlers.ForgotPasswordHandler)
		auth.POST("/reset-password", handlers.ResetPasswordHandler)
	}
}
