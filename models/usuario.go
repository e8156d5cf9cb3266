package models

import "time"

// Roles disponibles para un usuario.
const (
	RolUsuario = "usuario"
	RolAdmin   = "admin"
)

// Usuario representa una cuenta registrada en la aplicación. La contraseña
// se guarda siempre como hash bcrypt y nunca viaja en las respuestas JSON.
type Usuario struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Nombre        string    `json:"nombre" gorm:"size:100;not null"`
	Correo        string    `json:"correo" gorm:"size:100;uniqueIndex;not null"`
	Contrasena    string    `json:"-" gorm:"size:255;not null"`
	Rol           string    `json:"rol" gorm:"size:20;not null;default:usuario"`
	FechaRegistro time.Time `json:"fecha_registro" gorm:"autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }

// Recuperacion es un token de un solo uso para restablecer la contraseña.
// Expira a los 30 minutos de emitido.
type Recuperacion struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UsuarioID  uint      `json:"usuario_id" gorm:"index;not null"`
	Token      string    `json:"token" gorm:"size:255;uniqueIndex;not null"`
	Expiracion time.Time `json:"expiracion" gorm:"not null"`
	Usado      bool      `json:"usado" gorm:"not null;default:false"`
}

func (Recuperacion) TableName() string { return "recuperaciones" }
