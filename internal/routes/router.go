package routes

import (
	"lana-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes inicializa todos los endpoints de la aplicación. Primero los
// públicos de autenticación y después el grupo protegido, que pasa por
// AuthMiddleware en cada petición.
func SetupRoutes(r *gin.Engine) {
	RegisterAuthRoutes(r)

	protegido := r.Group("/")
	protegido.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(protegido)
	}
}
