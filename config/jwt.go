package config

import (
	"os"
	"time"
)

// TokenTTL es la vigencia de los tokens de acceso emitidos en el login.
const TokenTTL = 60 * time.Minute

// ResetTokenTTL es la vigencia de los tokens de recuperación de contraseña.
const ResetTokenTTL = 30 * time.Minute

// JwtKey devuelve la clave de firma HS256. En producción JWT_SECRET debe
// estar definida; el valor por defecto existe solo para desarrollo local.
func JwtKey() []byte {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return []byte(v)
	}
	return []byte("lana_app_secret_key_2024")
}
