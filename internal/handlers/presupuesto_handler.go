package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PresupuestoInput es el payload de alta de un presupuesto.
type PresupuestoInput struct {
	CategoriaID uint            `json:"categoria_id" binding:"required"`
	Nombre      string          `json:"nombre" binding:"required,max=100"`
	MontoTotal  decimal.Decimal `json:"monto_total" binding:"required"`
	FechaInicio string          `json:"fecha_inicio" binding:"required"`
	FechaFin    string          `json:"fecha_fin" binding:"required"`
}

// PresupuestoUpdateInput admite actualización parcial.
type PresupuestoUpdateInput struct {
	CategoriaID *uint            `json:"categoria_id"`
	Nombre      *string          `json:"nombre" binding:"omitempty,min=1,max=100"`
	MontoTotal  *decimal.Decimal `json:"monto_total"`
	FechaInicio *string          `json:"fecha_inicio"`
	FechaFin    *string          `json:"fecha_fin"`
}

// validarPresupuesto revisa el estado completo de un presupuesto antes de
// persistirlo, igual en alta que en edición.
func validarPresupuesto(db *gorm.DB, p *models.Presupuesto) string {
	var categoria models.Categoria
	if err := db.First(&categoria, p.CategoriaID).Error; err != nil {
		return "Categoría no encontrada"
	}
	if !p.MontoTotal.IsPositive() {
		return "El monto total debe ser mayor que cero"
	}
	if p.MontoTotal.GreaterThan(models.MontoMaximo) {
		return fmt.Sprintf("El monto total no puede superar %s", models.MontoMaximo.StringFixed(2))
	}
	if p.FechaFin.Before(p.FechaInicio) {
		return "La fecha final no puede ser anterior a la inicial"
	}
	return ""
}

// ListarPresupuestosHandler devuelve los presupuestos del usuario actual.
func ListarPresupuestosHandler(c *gin.Context) {
	var presupuestos []models.Presupuesto
	err := config.DB.Preload("Categoria").
		Where("usuario_id = ?", currentUsuarioID(c)).
		Order("fecha_inicio desc, id desc").
		Find(&presupuestos).Error
	if err != nil {
		slog.Error("No se pudieron consultar los presupuestos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if presupuestos == nil {
		presupuestos = make([]models.Presupuesto, 0)
	}
	c.JSON(http.StatusOK, presupuestos)
}

// ObtenerPresupuestoHandler busca un presupuesto por id con scoping de dueño.
func ObtenerPresupuestoHandler(c *gin.Context) {
	var presupuesto models.Presupuesto
	err := config.DB.Preload("Categoria").
		Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		First(&presupuesto).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Presupuesto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, presupuesto)
}

// CrearPresupuestoHandler registra un presupuesto nuevo.
func CrearPresupuestoHandler(c *gin.Context) {
	var input PresupuestoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	fechaInicio, err := parseFecha(input.FechaInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_inicio inválida, usa el formato YYYY-MM-DD"})
		return
	}
	fechaFin, err := parseFecha(input.FechaFin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_fin inválida, usa el formato YYYY-MM-DD"})
		return
	}

	presupuesto := models.Presupuesto{
		UsuarioID:   currentUsuarioID(c),
		CategoriaID: input.CategoriaID,
		Nombre:      input.Nombre,
		MontoTotal:  input.MontoTotal,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	}

	if msg := validarPresupuesto(config.DB, &presupuesto); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := config.DB.Create(&presupuesto).Error; err != nil {
		slog.Error("No se pudo crear el presupuesto", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, presupuesto)
}

// ActualizarPresupuestoHandler aplica una edición parcial y re-valida el
// estado resultante dentro de una transacción.
func ActualizarPresupuestoHandler(c *gin.Context) {
	var input PresupuestoUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var presupuesto models.Presupuesto
	var fallo struct {
		status  int
		mensaje string
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND usuario_id = ?", c.Param("id"), usuarioID).First(&presupuesto).Error; err != nil {
			fallo.status, fallo.mensaje = http.StatusNotFound, "Presupuesto no encontrado"
			return err
		}

		if input.CategoriaID != nil {
			presupuesto.CategoriaID = *input.CategoriaID
		}
		if input.Nombre != nil {
			presupuesto.Nombre = *input.Nombre
		}
		if input.MontoTotal != nil {
			presupuesto.MontoTotal = *input.MontoTotal
		}
		if input.FechaInicio != nil {
			fecha, err := parseFecha(*input.FechaInicio)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, "fecha_inicio inválida, usa el formato YYYY-MM-DD"
				return err
			}
			presupuesto.FechaInicio = fecha
		}
		if input.FechaFin != nil {
			fecha, err := parseFecha(*input.FechaFin)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, "fecha_fin inválida, usa el formato YYYY-MM-DD"
				return err
			}
			presupuesto.FechaFin = fecha
		}

		if msg := validarPresupuesto(tx, &presupuesto); msg != "" {
			fallo.status, fallo.mensaje = http.StatusBadRequest, msg
			return gorm.ErrInvalidData
		}

		return tx.Save(&presupuesto).Error
	})
	if err != nil {
		if fallo.mensaje != "" {
			c.JSON(fallo.status, gin.H{"error": fallo.mensaje})
			return
		}
		slog.Error("No se pudo actualizar el presupuesto", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, presupuesto)
}

// EliminarPresupuestoHandler borra un presupuesto del usuario actual.
func EliminarPresupuestoHandler(c *gin.Context) {
	result := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Delete(&models.Presupuesto{})
	if result.Error != nil {
		slog.Error("No se pudo eliminar el presupuesto", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Presupuesto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Presupuesto eliminado correctamente"})
}

// presupuestoUso es una fila del resumen de uso de presupuestos.
type presupuestoUso struct {
	Presupuesto   models.Presupuesto `json:"presupuesto"`
	MontoUsado    decimal.Decimal    `json:"monto_usado"`
	PorcentajeUso decimal.Decimal    `json:"porcentaje_uso"`
	Excedido      bool               `json:"excedido"`
}

// calcularUsoPresupuestos suma las transacciones vinculadas a cada
// presupuesto del usuario, sin importar su fecha.
func calcularUsoPresupuestos(usuarioID uint) ([]presupuestoUso, error) {
	var presupuestos []models.Presupuesto
	err := config.DB.Preload("Categoria").
		Where("usuario_id = ?", usuarioID).
		Order("fecha_inicio desc, id desc").
		Find(&presupuestos).Error
	if err != nil {
		return nil, err
	}

	type sumaFila struct {
		PresupuestoID uint
		Total         decimal.Decimal
	}
	var sumas []sumaFila
	err = config.DB.Model(&models.Transaccion{}).
		Select("presupuesto_id, COALESCE(SUM(monto), 0) as total").
		Where("usuario_id = ? AND presupuesto_id IS NOT NULL", usuarioID).
		Group("presupuesto_id").
		Scan(&sumas).Error
	if err != nil {
		return nil, err
	}

	usado := make(map[uint]decimal.Decimal, len(sumas))
	for _, s := range sumas {
		usado[s.PresupuestoID] = s.Total
	}

	resumen := make([]presupuestoUso, 0, len(presupuestos))
	for _, p := range presupuestos {
		montoUsado := usado[p.ID]
		resumen = append(resumen, presupuestoUso{
			Presupuesto:   p,
			MontoUsado:    montoUsado,
			PorcentajeUso: porcentaje(montoUsado, p.MontoTotal),
			Excedido:      montoUsado.GreaterThan(p.MontoTotal),
		})
	}
	return resumen, nil
}

// ResumenPresupuestosHandler devuelve el uso de cada presupuesto del
// usuario: monto usado, porcentaje y si está excedido.
func ResumenPresupuestosHandler(c *gin.Context) {
	resumen, err := calcularUsoPresupuestos(currentUsuarioID(c))
	if err != nil {
		slog.Error("No se pudo calcular el resumen de presupuestos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumen": resumen})
}

// umbralAlerta marca un presupuesto como cercano a agotarse.
var umbralAlerta = decimal.NewFromInt(80)

// AlertasPresupuestosHandler devuelve los presupuestos al 80% o más de
// uso, con un mensaje listo para mostrar.
func AlertasPresupuestosHandler(c *gin.Context) {
	resumen, err := calcularUsoPresupuestos(currentUsuarioID(c))
	if err != nil {
		slog.Error("No se pudieron calcular las alertas de presupuestos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	alertas := make([]gin.H, 0)
	for _, uso := range resumen {
		if uso.PorcentajeUso.LessThan(umbralAlerta) && !uso.Excedido {
			continue
		}
		mensaje := fmt.Sprintf("El presupuesto '%s' va en %s%% de uso", uso.Presupuesto.Nombre, uso.PorcentajeUso.StringFixed(0))
		if uso.Excedido {
			mensaje = fmt.Sprintf("El presupuesto '%s' está excedido", uso.Presupuesto.Nombre)
		}
		alertas = append(alertas, gin.H{
			"presupuesto_id": uso.Presupuesto.ID,
			"nombre":         uso.Presupuesto.Nombre,
			"porcentaje_uso": uso.PorcentajeUso,
			"excedido":       uso.Excedido,
			"mensaje":        mensaje,
		})
	}
	c.JSON(http.StatusOK, gin.H{"alertas": alertas})
}
