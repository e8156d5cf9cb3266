package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// totalesPorTipo suma ingresos y egresos del usuario dentro del rango
// [desde, hasta). Cualquiera de los límites puede ser nulo (sin acotar).
// Sin filas que sumar, ambos totales son cero.
func totalesPorTipo(usuarioID uint, desde, hasta *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := config.DB.Model(&models.Transaccion{}).Where("usuario_id = ?", usuarioID)
	if desde != nil {
		query = query.Where("fecha >= ?", *desde)
	}
	if hasta != nil {
		query = query.Where("fecha < ?", *hasta)
	}

	type fila struct {
		Tipo  string
		Total decimal.Decimal
	}
	var filas []fila
	err := query.Select("tipo, COALESCE(SUM(monto), 0) as total").Group("tipo").Scan(&filas).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, f := range filas {
		switch f.Tipo {
		case models.TipoIngreso:
			ingresos = f.Total
		case models.TipoEgreso:
			egresos = f.Total
		}
	}
	return ingresos, egresos, nil
}

// rangoDesdeQuery interpreta el parámetro opcional "periodo". Sin periodo
// el rango queda abierto por ambos lados.
func rangoDesdeQuery(c *gin.Context) (*time.Time, *time.Time, bool) {
	periodo := c.Query("periodo")
	if periodo == "" {
		return nil, nil, true
	}
	desde, hasta, err := rangoPeriodo(periodo, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return &desde, &hasta, true
}

// DashboardHandler arma la vista principal: totales históricos, próximos
// pagos fijos (tope de 5) y el contador de notificaciones sin leer.
func DashboardHandler(c *gin.Context) {
	usuarioID := currentUsuarioID(c)

	ingresos, egresos, err := totalesPorTipo(usuarioID, nil, nil)
	if err != nil {
		slog.Error("No se pudieron calcular los totales del dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	pagos, err := pagosProximos(usuarioID, 30, 5)
	if err != nil {
		slog.Error("No se pudieron consultar los pagos próximos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	var noLeidas int64
	err = config.DB.Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leido = ?", usuarioID, false).
		Count(&noLeidas).Error
	if err != nil {
		slog.Error("No se pudieron contar las notificaciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_ingresos":           ingresos,
		"total_egresos":            egresos,
		"saldo":                    ingresos.Sub(egresos),
		"pagos_pendientes":         pagos,
		"notificaciones_no_leidas": noLeidas,
	})
}

// BalanceHandler devuelve ingresos, egresos y saldo del periodo pedido
// (dia, semana, mes o anio; sin periodo, el histórico completo).
func BalanceHandler(c *gin.Context) {
	desde, hasta, ok := rangoDesdeQuery(c)
	if !ok {
		return
	}

	ingresos, egresos, err := totalesPorTipo(currentUsuarioID(c), desde, hasta)
	if err != nil {
		slog.Error("No se pudo calcular el balance", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_ingresos": ingresos,
		"total_egresos":  egresos,
		"saldo":          ingresos.Sub(egresos),
	})
}

// categoriaTotal es una fila del desglose por categoría.
type categoriaTotal struct {
	CategoriaID uint            `json:"categoria_id"`
	Categoria   string          `json:"categoria"`
	Total       decimal.Decimal `json:"total"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
}

// desglosePorCategoria agrupa las transacciones de un tipo por categoría y
// calcula el porcentaje de cada grupo sobre el total del propio desglose.
func desglosePorCategoria(usuarioID uint, tipo string, desde, hasta *time.Time, db *gorm.DB) ([]categoriaTotal, error) {
	query := db.Model(&models.Transaccion{}).
		Select("transacciones.categoria_id, categorias.nombre as categoria, COALESCE(SUM(transacciones.monto), 0) as total").
		Joins("JOIN categorias ON categorias.id = transacciones.categoria_id").
		Where("transacciones.usuario_id = ? AND transacciones.tipo = ?", usuarioID, tipo).
		Group("transacciones.categoria_id, categorias.nombre").
		Order("total desc")
	if desde != nil {
		query = query.Where("transacciones.fecha >= ?", *desde)
	}
	if hasta != nil {
		query = query.Where("transacciones.fecha < ?", *hasta)
	}

	var filas []categoriaTotal
	if err := query.Scan(&filas).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, f := range filas {
		total = total.Add(f.Total)
	}
	for i := range filas {
		filas[i].Porcentaje = porcentaje(filas[i].Total, total)
	}
	if filas == nil {
		filas = make([]categoriaTotal, 0)
	}
	return filas, nil
}

// ResumenDashboardHandler devuelve el desglose por categoría de ingresos y
// egresos dentro del periodo pedido.
func ResumenDashboardHandler(c *gin.Context) {
	desde, hasta, ok := rangoDesdeQuery(c)
	if !ok {
		return
	}
	usuarioID := currentUsuarioID(c)

	ingresos, err := desglosePorCategoria(usuarioID, models.TipoIngreso, desde, hasta, config.DB)
	if err != nil {
		slog.Error("No se pudo calcular el desglose de ingresos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	egresos, err := desglosePorCategoria(usuarioID, models.TipoEgreso, desde, hasta, config.DB)
	if err != nil {
		slog.Error("No se pudo calcular el desglose de egresos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingresos": ingresos,
		"egresos":  egresos,
	})
}
