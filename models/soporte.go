package models

import "time"

// Estados de un ticket de soporte.
const (
	TicketAbierto = "abierto"
	TicketCerrado = "cerrado"
)

// Prioridades de un ticket.
const (
	PrioridadBaja  = "baja"
	PrioridadMedia = "media"
	PrioridadAlta  = "alta"
)

// Soporte es un ticket enviado por el usuario al equipo de la aplicación.
type Soporte struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UsuarioID   uint       `json:"usuario_id" gorm:"index;not null"`
	Asunto      string     `json:"asunto" gorm:"size:100;not null"`
	Mensaje     string     `json:"mensaje" gorm:"type:text;not null"`
	Estado      string     `json:"estado" gorm:"size:20;not null;default:abierto"`
	Prioridad   string     `json:"prioridad" gorm:"size:20;not null;default:media"`
	FechaEnvio  time.Time  `json:"fecha_envio" gorm:"autoCreateTime"`
	FechaCierre *time.Time `json:"fecha_cierre,omitempty"`
}

func (Soporte) TableName() string { return "soporte" }
