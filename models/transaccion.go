package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MontoMaximo es el tope permitido para cualquier monto: 999,999,999.99.
var MontoMaximo = decimal.New(99999999999, -2)

// MontoValido verifica que un monto sea estrictamente positivo y no
// supere el tope configurado.
func MontoValido(m decimal.Decimal) bool {
	return m.IsPositive() && m.LessThanOrEqual(MontoMaximo)
}

// Transaccion es un movimiento de ingreso o egreso del usuario. La cuenta
// bancaria y el presupuesto son opcionales; la categoría es obligatoria y
// su tipo debe coincidir con el tipo de la transacción.
type Transaccion struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	UsuarioID     uint            `json:"usuario_id" gorm:"index;not null"`
	CuentaID      *uint           `json:"cuenta_id"`
	CategoriaID   uint            `json:"categoria_id" gorm:"not null"`
	PresupuestoID *uint           `json:"presupuesto_id" gorm:"index"`
	Monto         decimal.Decimal `json:"monto" gorm:"type:numeric(12,2);not null"`
	Tipo          string          `json:"tipo" gorm:"size:10;not null"`
	Descripcion   string          `json:"descripcion" gorm:"type:text"`
	Fecha         time.Time       `json:"fecha" gorm:"not null"`
	Activo        bool            `json:"activo" gorm:"not null;default:true"`

	Categoria *Categoria `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
}

func (Transaccion) TableName() string { return "transacciones" }
