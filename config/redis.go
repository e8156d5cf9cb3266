package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis inicializa el cliente de caché. Redis es opcional: si
// REDIS_ADDR no está definida o la conexión falla, el middleware de
// autenticación simplemente consulta la base de datos en cada petición.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR no está definida, la caché de sesiones queda desactivada")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("No se pudo conectar a Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("Conexión a Redis establecida")
}
