package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago fijo.
const (
	EstadoPendiente  = "Pendiente"
	EstadoCompletado = "Completado"
)

// Frecuencias reconocidas, en su forma canónica.
const (
	FrecuenciaDiario     = "Diario"
	FrecuenciaSemanal    = "Semanal"
	FrecuenciaQuincenal  = "Quincenal"
	FrecuenciaMensual    = "Mensual"
	FrecuenciaBimestral  = "Bimestral"
	FrecuenciaTrimestral = "Trimestral"
	FrecuenciaSemestral  = "Semestral"
	FrecuenciaAnual      = "Anual"
)

// Frecuencias devuelve el catálogo completo en orden de periodicidad.
func Frecuencias() []string {
	return []string{
		FrecuenciaDiario, FrecuenciaSemanal, FrecuenciaQuincenal,
		FrecuenciaMensual, FrecuenciaBimestral, FrecuenciaTrimestral,
		FrecuenciaSemestral, FrecuenciaAnual,
	}
}

// ParseFrecuencia normaliza una frecuencia a su forma canónica sin importar
// mayúsculas o minúsculas. Cualquier valor fuera del catálogo se rechaza.
func ParseFrecuencia(s string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Frecuencias() {
		if strings.ToLower(f) == lower {
			return f, nil
		}
	}
	return "", fmt.Errorf("frecuencia no reconocida: %q", s)
}

// ParseEstado normaliza el estado de un pago fijo, rechazando valores
// fuera del catálogo.
func ParseEstado(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case strings.ToLower(EstadoPendiente):
		return EstadoPendiente, nil
	case strings.ToLower(EstadoCompletado):
		return EstadoCompletado, nil
	}
	return "", fmt.Errorf("estado no reconocido: %q", s)
}

// PagoFijo es un gasto recurrente esperado (renta, suscripciones, etc.).
// El campo Activo permite pausarlo y reanudarlo sin perder el registro.
type PagoFijo struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	UsuarioID   uint            `json:"usuario_id" gorm:"index;not null"`
	Nombre      string          `json:"nombre" gorm:"size:100;not null"`
	Monto       decimal.Decimal `json:"monto" gorm:"type:numeric(12,2);not null"`
	Categoria   string          `json:"categoria" gorm:"size:100"`
	Frecuencia  string          `json:"frecuencia" gorm:"size:50;not null"`
	FechaInicio time.Time       `json:"fecha_inicio" gorm:"not null"`
	Estado      string          `json:"estado" gorm:"size:20;not null;default:Pendiente"`
	Activo      bool            `json:"activo" gorm:"not null;default:true"`
}

func (PagoFijo) TableName() string { return "pagos_fijos" }
