package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangoPeriodo(t *testing.T) {
	// Miércoles 18 de junio de 2025.
	ahora := time.Date(2025, time.June, 18, 15, 42, 0, 0, time.UTC)

	tests := []struct {
		periodo string
		inicio  time.Time
		fin     time.Time
	}{
		{"dia", time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)},
		{"semana", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)},
		{"mes", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"anio", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.periodo, func(t *testing.T) {
			inicio, fin, err := rangoPeriodo(tt.periodo, ahora)
			require.NoError(t, err)
			assert.Equal(t, tt.inicio, inicio)
			assert.Equal(t, tt.fin, fin)
		})
	}
}

func TestRangoPeriodoSemanaEmpiezaEnLunes(t *testing.T) {
	// Un domingo pertenece a la semana que empezó el lunes anterior.
	domingo := time.Date(2025, time.June, 22, 8, 0, 0, 0, time.UTC)
	inicio, fin, err := rangoPeriodo("semana", domingo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), inicio)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), fin)
}

func TestRangoPeriodoDesconocido(t *testing.T) {
	_, _, err := rangoPeriodo("trimestre", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "periodo no reconocido")
}

func TestPorcentaje(t *testing.T) {
	assert.True(t, decimal.NewFromInt(25).Equal(porcentaje(decimal.NewFromInt(1), decimal.NewFromInt(4))))
	assert.True(t, decimal.RequireFromString("33.33").Equal(porcentaje(decimal.NewFromInt(1), decimal.NewFromInt(3))))
}

func TestPorcentajeTotalCero(t *testing.T) {
	// Con total cero el resultado es 0, nunca una división inválida.
	got := porcentaje(decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())

	got = porcentaje(decimal.NewFromInt(50), decimal.Zero)
	assert.True(t, decimal.NewFromInt(5000).Equal(got))
}
