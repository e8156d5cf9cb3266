package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// UsuarioCacheado es el resumen del usuario que se guarda en la caché para
// no consultar la base de datos en cada petición.
type UsuarioCacheado struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Rol    string `json:"rol"`
}

const cacheTTL = 10 * time.Minute

// CacheKeyUsuario devuelve la clave de caché del resumen de un usuario.
func CacheKeyUsuario(usuarioID uint) string {
	return fmt.Sprintf("usuario:%d:perfil", usuarioID)
}

// InvalidarUsuarioCache borra el resumen cacheado de un usuario. Se llama
// tras cualquier mutación del perfil para que el middleware vuelva a leer
// de la base de datos.
func InvalidarUsuarioCache(usuarioID uint) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(config.Ctx, CacheKeyUsuario(usuarioID)).Err(); err != nil {
		slog.Error("No se pudo invalidar la caché del usuario", "error", err, "usuario_id", usuarioID)
	}
}

// AuthMiddleware es la única puerta de autorización: resuelve el token
// Bearer a un usuario existente antes de ejecutar cualquier handler
// protegido. Deja el id y el resumen del usuario en el contexto de gin.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Token de autorización no proporcionado")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthorized(c, "Formato del encabezado Authorization inválido")
			return
		}
		tokenStr := parts[1]

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return config.JwtKey(), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Token inválido o expirado")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Claims del token inválidos")
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok {
			abortUnauthorized(c, "El token no identifica al usuario")
			return
		}
		id64, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			abortUnauthorized(c, "El token no identifica al usuario")
			return
		}
		usuarioID := uint(id64)

		cacheKey := CacheKeyUsuario(usuarioID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var datos UsuarioCacheado
				if json.Unmarshal([]byte(cached), &datos) == nil {
					setContextAndProceed(c, &datos)
					return
				}
				slog.Warn("Resumen de usuario cacheado corrupto", "usuario_id", usuarioID)
			} else if err != redis.Nil {
				slog.Error("Fallo al leer de Redis", "error", err, "usuario_id", usuarioID)
			}
		}

		var usuario models.Usuario
		if err := config.DB.First(&usuario, usuarioID).Error; err != nil {
			// El token era válido pero el usuario ya no existe (cuenta
			// eliminada): el recurso ausente responde 404, como en el resto
			// del API.
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			c.Abort()
			return
		}

		datos := UsuarioCacheado{
			ID:     usuario.ID,
			Nombre: usuario.Nombre,
			Correo: usuario.Correo,
			Rol:    usuario.Rol,
		}

		if config.RDB != nil {
			jsonData, err := json.Marshal(datos)
			if err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, cacheTTL).Err(); err != nil {
					slog.Error("No se pudo cachear el resumen del usuario", "error", err, "usuario_id", usuarioID)
				}
			}
		}

		setContextAndProceed(c, &datos)
	}
}

func setContextAndProceed(c *gin.Context, datos *UsuarioCacheado) {
	c.Set("usuario_id", datos.ID)
	c.Set("usuario", datos)
	c.Next()
}

func abortUnauthorized(c *gin.Context, mensaje string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": mensaje})
	c.Abort()
}
