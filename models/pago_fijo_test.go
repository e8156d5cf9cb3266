package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrecuencia(t *testing.T) {
	tests := []struct {
		entrada string
		salida  string
	}{
		{"Mensual", FrecuenciaMensual},
		{"mensual", FrecuenciaMensual},
		{"  QUINCENAL ", FrecuenciaQuincenal},
		{"anual", FrecuenciaAnual},
	}
	for _, tt := range tests {
		got, err := ParseFrecuencia(tt.entrada)
		require.NoError(t, err, tt.entrada)
		assert.Equal(t, tt.salida, got)
	}
}

func TestParseFrecuenciaInvalida(t *testing.T) {
	for _, entrada := range []string{"", "cada tanto", "mensuall"} {
		_, err := ParseFrecuencia(entrada)
		assert.Error(t, err, entrada)
	}
}

func TestParseEstado(t *testing.T) {
	got, err := ParseEstado("pendiente")
	require.NoError(t, err)
	assert.Equal(t, EstadoPendiente, got)

	got, err = ParseEstado("COMPLETADO")
	require.NoError(t, err)
	assert.Equal(t, EstadoCompletado, got)

	_, err = ParseEstado("cancelado")
	assert.Error(t, err)
}

func TestMontoValido(t *testing.T) {
	assert.True(t, MontoValido(decimal.RequireFromString("0.01")))
	assert.True(t, MontoValido(MontoMaximo))

	assert.False(t, MontoValido(decimal.Zero))
	assert.False(t, MontoValido(decimal.NewFromInt(-5)))
	assert.False(t, MontoValido(MontoMaximo.Add(decimal.RequireFromString("0.01"))))
}

func TestConfiguracionPorDefecto(t *testing.T) {
	cfg := ConfiguracionPorDefecto(7)
	assert.Equal(t, uint(7), cfg.UsuarioID)
	assert.True(t, cfg.Email)
	assert.False(t, cfg.SMS)
	assert.True(t, cfg.Recordatorios)
}
