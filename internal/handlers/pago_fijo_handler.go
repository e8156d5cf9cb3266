package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PagoFijoInput es el payload de alta de un pago fijo.
type PagoFijoInput struct {
	Nombre      string          `json:"nombre" binding:"required,max=100"`
	Monto       decimal.Decimal `json:"monto" binding:"required"`
	Categoria   string          `json:"categoria" binding:"max=100"`
	Frecuencia  string          `json:"frecuencia" binding:"required"`
	FechaInicio string          `json:"fecha_inicio" binding:"required"`
	Estado      string          `json:"estado"`
}

// PagoFijoUpdateInput admite actualización parcial.
type PagoFijoUpdateInput struct {
	Nombre      *string          `json:"nombre" binding:"omitempty,min=1,max=100"`
	Monto       *decimal.Decimal `json:"monto"`
	Categoria   *string          `json:"categoria" binding:"omitempty,max=100"`
	Frecuencia  *string          `json:"frecuencia"`
	FechaInicio *string          `json:"fecha_inicio"`
	Estado      *string          `json:"estado"`
	Activo      *bool            `json:"activo"`
}

// ListarPagosFijosHandler devuelve los pagos fijos del usuario actual.
func ListarPagosFijosHandler(c *gin.Context) {
	var pagos []models.PagoFijo
	err := config.DB.Where("usuario_id = ?", currentUsuarioID(c)).
		Order("fecha_inicio asc, id asc").
		Find(&pagos).Error
	if err != nil {
		slog.Error("No se pudieron consultar los pagos fijos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if pagos == nil {
		pagos = make([]models.PagoFijo, 0)
	}
	c.JSON(http.StatusOK, pagos)
}

// pagosProximos consulta los pagos activos y pendientes cuya fecha de
// inicio cae entre hoy y hoy+dias, ordenados por cercanía. Con limite > 0
// se acota el resultado.
func pagosProximos(usuarioID uint, dias, limite int) ([]models.PagoFijo, error) {
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	hasta := hoy.AddDate(0, 0, dias)

	query := config.DB.Where(
		"usuario_id = ? AND activo = ? AND estado = ? AND fecha_inicio >= ? AND fecha_inicio <= ?",
		usuarioID, true, models.EstadoPendiente, hoy, hasta,
	).Order("fecha_inicio asc")
	if limite > 0 {
		query = query.Limit(limite)
	}

	var pagos []models.PagoFijo
	if err := query.Find(&pagos).Error; err != nil {
		return nil, err
	}
	if pagos == nil {
		pagos = make([]models.PagoFijo, 0)
	}
	return pagos, nil
}

// ProximosPagosHandler devuelve los pagos próximos dentro de la ventana
// pedida (parámetro "dias", 30 por defecto), sin tope de cantidad.
func ProximosPagosHandler(c *gin.Context) {
	dias := 30
	if v := c.Query("dias"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro dias debe ser un entero positivo"})
			return
		}
		dias = n
	}

	pagos, err := pagosProximos(currentUsuarioID(c), dias, 0)
	if err != nil {
		slog.Error("No se pudieron consultar los pagos próximos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, pagos)
}

// FrecuenciasHandler devuelve el catálogo cerrado de frecuencias.
func FrecuenciasHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frecuencias": models.Frecuencias()})
}

// ObtenerPagoFijoHandler busca un pago fijo por id con scoping de dueño.
func ObtenerPagoFijoHandler(c *gin.Context) {
	var pago models.PagoFijo
	err := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).First(&pago).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago fijo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, pago)
}

// CrearPagoFijoHandler registra un pago fijo. Frecuencia y estado pasan
// por el parser canónico: un valor fuera del catálogo se rechaza.
func CrearPagoFijoHandler(c *gin.Context) {
	var input PagoFijoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	frecuencia, err := models.ParseFrecuencia(input.Frecuencia)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estado := models.EstadoPendiente
	if input.Estado != "" {
		estado, err = models.ParseEstado(input.Estado)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	fechaInicio, err := parseFecha(input.FechaInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_inicio inválida, usa el formato YYYY-MM-DD"})
		return
	}

	if !models.MontoValido(input.Monto) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("El monto debe ser mayor que cero y no superar %s", models.MontoMaximo.StringFixed(2))})
		return
	}

	pago := models.PagoFijo{
		UsuarioID:   currentUsuarioID(c),
		Nombre:      input.Nombre,
		Monto:       input.Monto,
		Categoria:   input.Categoria,
		Frecuencia:  frecuencia,
		FechaInicio: fechaInicio,
		Estado:      estado,
		Activo:      true,
	}
	if err := config.DB.Create(&pago).Error; err != nil {
		slog.Error("No se pudo crear el pago fijo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// ActualizarPagoFijoHandler aplica una edición parcial con la misma
// normalización de frecuencia y estado que el alta.
func ActualizarPagoFijoHandler(c *gin.Context) {
	var input PagoFijoUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var pago models.PagoFijo
	var fallo struct {
		status  int
		mensaje string
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND usuario_id = ?", c.Param("id"), usuarioID).First(&pago).Error; err != nil {
			fallo.status, fallo.mensaje = http.StatusNotFound, "Pago fijo no encontrado"
			return err
		}

		if input.Nombre != nil {
			pago.Nombre = *input.Nombre
		}
		if input.Monto != nil {
			if !models.MontoValido(*input.Monto) {
				fallo.status = http.StatusBadRequest
				fallo.mensaje = fmt.Sprintf("El monto debe ser mayor que cero y no superar %s", models.MontoMaximo.StringFixed(2))
				return gorm.ErrInvalidData
			}
			pago.Monto = *input.Monto
		}
		if input.Categoria != nil {
			pago.Categoria = *input.Categoria
		}
		if input.Frecuencia != nil {
			frecuencia, err := models.ParseFrecuencia(*input.Frecuencia)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, err.Error()
				return err
			}
			pago.Frecuencia = frecuencia
		}
		if input.FechaInicio != nil {
			fecha, err := parseFecha(*input.FechaInicio)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, "fecha_inicio inválida, usa el formato YYYY-MM-DD"
				return err
			}
			pago.FechaInicio = fecha
		}
		if input.Estado != nil {
			estado, err := models.ParseEstado(*input.Estado)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, err.Error()
				return err
			}
			pago.Estado = estado
		}
		if input.Activo != nil {
			pago.Activo = *input.Activo
		}

		return tx.Save(&pago).Error
	})
	if err != nil {
		if fallo.mensaje != "" {
			c.JSON(fallo.status, gin.H{"error": fallo.mensaje})
			return
		}
		slog.Error("No se pudo actualizar el pago fijo", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, pago)
}

// cambiarActivoPagoFijo pausa o reanuda un pago fijo del usuario actual.
func cambiarActivoPagoFijo(c *gin.Context, activo bool, mensaje string) {
	result := config.DB.Model(&models.PagoFijo{}).
		Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Update("activo", activo)
	if result.Error != nil {
		slog.Error("No se pudo cambiar el estado del pago fijo", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago fijo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": mensaje})
}

// PausarPagoFijoHandler desactiva un pago fijo sin borrarlo.
func PausarPagoFijoHandler(c *gin.Context) {
	cambiarActivoPagoFijo(c, false, "Pago fijo pausado")
}

// ReanudarPagoFijoHandler reactiva un pago fijo pausado.
func ReanudarPagoFijoHandler(c *gin.Context) {
	cambiarActivoPagoFijo(c, true, "Pago fijo reanudado")
}

// EliminarPagoFijoHandler borra un pago fijo del usuario actual.
func EliminarPagoFijoHandler(c *gin.Context) {
	result := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Delete(&models.PagoFijo{})
	if result.Error != nil {
		slog.Error("No se pudo eliminar el pago fijo", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago fijo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Pago fijo eliminado correctamente"})
}
