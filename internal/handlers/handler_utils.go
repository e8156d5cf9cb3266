package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// fechaISO es el formato de fecha aceptado en todo el API.
const fechaISO = "2006-01-02"

// currentUsuarioID extrae el id del usuario autenticado del contexto.
// AuthMiddleware garantiza que existe en cualquier ruta protegida.
func currentUsuarioID(c *gin.Context) uint {
	v, _ := c.Get("usuario_id")
	id, _ := v.(uint)
	return id
}

// parseFecha interpreta una fecha ISO-8601 (YYYY-MM-DD) en UTC.
func parseFecha(s string) (time.Time, error) {
	return time.Parse(fechaISO, s)
}

// rangoPeriodo convierte un periodo nombrado en un rango [inicio, fin)
// relativo a ahora:
//
//	dia    — solo hoy
//	semana — lunes a domingo de la semana actual
//	mes    — del primero al último día del mes actual
//	anio   — del 1 de enero al 31 de diciembre del año actual
func rangoPeriodo(periodo string, ahora time.Time) (time.Time, time.Time, error) {
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.UTC)
	switch periodo {
	case "dia":
		return hoy, hoy.AddDate(0, 0, 1), nil
	case "semana":
		// time.Weekday cuenta desde domingo; la semana aquí empieza en lunes.
		offset := (int(hoy.Weekday()) + 6) % 7
		lunes := hoy.AddDate(0, 0, -offset)
		return lunes, lunes.AddDate(0, 0, 7), nil
	case "mes":
		primero := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, time.UTC)
		return primero, primero.AddDate(0, 1, 0), nil
	case "anio":
		primero := time.Date(hoy.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return primero, primero.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, errors.New("periodo no reconocido: usa dia, semana, mes o anio")
}

// porcentaje calcula parte/total*100 con dos decimales. Si el total es
// cero el denominador se trata como 1 para que el resultado sea 0 en vez
// de un error de división.
func porcentaje(parte, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		total = decimal.NewFromInt(1)
	}
	return parte.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}
