package main

import (
	"log/slog"
	"os"

	"lana-app/config"
	"lana-app/internal/routes"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// El archivo .env es opcional; en producción las variables llegan
	// del entorno.
	if err := godotenv.Load(); err == nil {
		slog.Info("Variables cargadas desde .env")
	}

	config.ConnectDB()
	defer config.CloseDB()
	config.ConnectRedis()

	if err := models.Migrate(config.DB); err != nil {
		slog.Error("Fallo al migrar el esquema", "error", err)
		os.Exit(1)
	}
	if err := models.SeedCategorias(config.DB); err != nil {
		slog.Error("Fallo al cargar el catálogo de categorías", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	slog.Info("Servidor escuchando", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}
