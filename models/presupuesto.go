package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Presupuesto asigna un monto total a una categoría durante un rango de
// fechas. Las transacciones pueden vincularse a él vía presupuesto_id.
type Presupuesto struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	UsuarioID   uint            `json:"usuario_id" gorm:"index;not null"`
	CategoriaID uint            `json:"categoria_id" gorm:"not null"`
	Nombre      string          `json:"nombre" gorm:"size:100;not null"`
	MontoTotal  decimal.Decimal `json:"monto_total" gorm:"type:numeric(12,2);not null"`
	FechaInicio time.Time       `json:"fecha_inicio" gorm:"not null"`
	FechaFin    time.Time       `json:"fecha_fin" gorm:"not null"`

	Categoria *Categoria `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
}

func (Presupuesto) TableName() string { return "presupuestos" }
