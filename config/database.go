package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB abre el pool de conexiones global a partir de DATABASE_URL.
// La aplicación no puede funcionar sin base de datos, así que cualquier
// fallo aquí termina el proceso.
func ConnectDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("La variable de entorno DATABASE_URL no está definida")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Error al conectar con la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Conexión a la base de datos establecida")
}

// CloseDB drena el pool al apagar el servidor.
func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		slog.Error("No se pudo obtener el pool subyacente", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Error al cerrar el pool de conexiones", "error", err)
	}
}
