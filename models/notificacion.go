package models

import "time"

// Notificacion es un aviso dentro de la aplicación (cambio de contraseña,
// presupuesto excedido, etc.).
type Notificacion struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	UsuarioID     uint      `json:"usuario_id" gorm:"index;not null"`
	Mensaje       string    `json:"mensaje" gorm:"type:text;not null"`
	Leido         bool      `json:"leido" gorm:"not null;default:false"`
	FechaCreacion time.Time `json:"fecha_creacion" gorm:"autoCreateTime"`
}

func (Notificacion) TableName() string { return "notificaciones" }

// ConfiguracionNotificacion guarda las preferencias de canales de aviso de
// un usuario. Se crea de forma perezosa con los valores por defecto la
// primera vez que se consulta.
type ConfiguracionNotificacion struct {
	ID            uint `json:"id" gorm:"primarykey"`
	UsuarioID     uint `json:"usuario_id" gorm:"uniqueIndex;not null"`
	Email         bool `json:"email"`
	SMS           bool `json:"sms" gorm:"column:sms"`
	Recordatorios bool `json:"recordatorios"`
}

func (ConfiguracionNotificacion) TableName() string { return "configuracion_notificaciones" }

// ConfiguracionPorDefecto devuelve la configuración inicial de un usuario:
// correo y recordatorios activados, SMS desactivado.
func ConfiguracionPorDefecto(usuarioID uint) ConfiguracionNotificacion {
	return ConfiguracionNotificacion{
		UsuarioID:     usuarioID,
		Email:         true,
		SMS:           false,
		Recordatorios: true,
	}
}
