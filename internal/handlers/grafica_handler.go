package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// puntoSerie es una cubeta de la serie temporal de una gráfica.
type puntoSerie struct {
	Etiqueta string          `json:"etiqueta"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Balance  decimal.Decimal `json:"balance"`
}

// GraficaIngresosGastosHandler devuelve la serie temporal de ingresos y
// egresos. Con periodo=mes las cubetas son días del mes en curso; con
// periodo=anio son los meses del año en curso. Las cubetas sin movimientos
// aparecen en cero para que la gráfica quede completa.
func GraficaIngresosGastosHandler(c *gin.Context) {
	periodo := c.DefaultQuery("periodo", "mes")
	if periodo != "mes" && periodo != "anio" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodo no reconocido: usa mes o anio"})
		return
	}

	desde, hasta, err := rangoPeriodo(periodo, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var transacciones []models.Transaccion
	err = config.DB.Where("usuario_id = ? AND fecha >= ? AND fecha < ?", usuarioID, desde, hasta).
		Find(&transacciones).Error
	if err != nil {
		slog.Error("No se pudieron consultar las transacciones de la gráfica", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	// Etiqueta de cubeta: día concreto para el mes, YYYY-MM para el año.
	etiqueta := func(t time.Time) string {
		if periodo == "anio" {
			return t.Format("2006-01")
		}
		return t.Format(fechaISO)
	}

	// Se generan todas las cubetas del rango, en orden, antes de sumar.
	var orden []string
	serie := make(map[string]*puntoSerie)
	paso := func(t time.Time) time.Time {
		if periodo == "anio" {
			return t.AddDate(0, 1, 0)
		}
		return t.AddDate(0, 0, 1)
	}
	for t := desde; t.Before(hasta); t = paso(t) {
		e := etiqueta(t)
		orden = append(orden, e)
		serie[e] = &puntoSerie{Etiqueta: e, Ingresos: decimal.Zero, Egresos: decimal.Zero, Balance: decimal.Zero}
	}

	for _, tr := range transacciones {
		punto, ok := serie[etiqueta(tr.Fecha)]
		if !ok {
			continue
		}
		switch tr.Tipo {
		case models.TipoIngreso:
			punto.Ingresos = punto.Ingresos.Add(tr.Monto)
		case models.TipoEgreso:
			punto.Egresos = punto.Egresos.Add(tr.Monto)
		}
	}

	puntos := make([]puntoSerie, 0, len(orden))
	for _, e := range orden {
		punto := serie[e]
		punto.Balance = punto.Ingresos.Sub(punto.Egresos)
		puntos = append(puntos, *punto)
	}

	c.JSON(http.StatusOK, gin.H{"periodo": periodo, "serie": puntos})
}

// GraficaDistribucionCategoriaHandler devuelve la distribución porcentual
// por categoría de un tipo de movimiento (egreso por defecto) dentro del
// periodo pedido.
func GraficaDistribucionCategoriaHandler(c *gin.Context) {
	tipo := c.DefaultQuery("tipo", models.TipoEgreso)
	if !models.TipoValido(tipo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Tipo inválido: %s", tipo)})
		return
	}

	desde, hasta, ok := rangoDesdeQuery(c)
	if !ok {
		return
	}

	distribucion, err := desglosePorCategoria(currentUsuarioID(c), tipo, desde, hasta, config.DB)
	if err != nil {
		slog.Error("No se pudo calcular la distribución por categoría", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tipo": tipo, "distribucion": distribucion})
}
