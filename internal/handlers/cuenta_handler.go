package handlers

import (
	"log/slog"
	"net/http"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CuentaInput es el payload de alta de una cuenta bancaria.
type CuentaInput struct {
	NombreBanco  string `json:"nombre_banco" binding:"required,max=100"`
	NumeroCuenta string `json:"numero_cuenta" binding:"required,max=50"`
	TipoCuenta   string `json:"tipo_cuenta" binding:"required,max=50"`
}

// ListarCuentasHandler devuelve las cuentas bancarias del usuario actual.
func ListarCuentasHandler(c *gin.Context) {
	var cuentas []models.CuentaBancaria
	if err := config.DB.Where("usuario_id = ?", currentUsuarioID(c)).Order("id asc").Find(&cuentas).Error; err != nil {
		slog.Error("No se pudieron consultar las cuentas", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if cuentas == nil {
		cuentas = make([]models.CuentaBancaria, 0)
	}
	c.JSON(http.StatusOK, cuentas)
}

// ObtenerCuentaHandler busca una cuenta por id. Una cuenta ajena responde
// 404, igual que una inexistente.
func ObtenerCuentaHandler(c *gin.Context) {
	var cuenta models.CuentaBancaria
	err := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).First(&cuenta).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cuenta no encontrada"})
		return
	}
	c.JSON(http.StatusOK, cuenta)
}

// CrearCuentaHandler registra una cuenta bancaria. El dueño siempre es el
// usuario autenticado, sin importar lo que diga el payload.
func CrearCuentaHandler(c *gin.Context) {
	var input CuentaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	cuenta := models.CuentaBancaria{
		UsuarioID:    currentUsuarioID(c),
		NombreBanco:  input.NombreBanco,
		NumeroCuenta: input.NumeroCuenta,
		TipoCuenta:   input.TipoCuenta,
	}
	if err := config.DB.Create(&cuenta).Error; err != nil {
		slog.Error("No se pudo crear la cuenta", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, cuenta)
}

// ActualizarCuentaInput admite actualización parcial de una cuenta.
type ActualizarCuentaInput struct {
	NombreBanco  *string `json:"nombre_banco" binding:"omitempty,max=100"`
	NumeroCuenta *string `json:"numero_cuenta" binding:"omitempty,max=50"`
	TipoCuenta   *string `json:"tipo_cuenta" binding:"omitempty,max=50"`
}

// ActualizarCuentaHandler modifica los campos presentes en el payload. La
// lectura y la escritura comparten transacción.
func ActualizarCuentaHandler(c *gin.Context) {
	var input ActualizarCuentaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	var cuenta models.CuentaBancaria
	var fallo struct {
		status  int
		mensaje string
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).First(&cuenta).Error; err != nil {
			fallo.status, fallo.mensaje = http.StatusNotFound, "Cuenta no encontrada"
			return err
		}

		if input.NombreBanco != nil {
			cuenta.NombreBanco = *input.NombreBanco
		}
		if input.NumeroCuenta != nil {
			cuenta.NumeroCuenta = *input.NumeroCuenta
		}
		if input.TipoCuenta != nil {
			cuenta.TipoCuenta = *input.TipoCuenta
		}

		return tx.Save(&cuenta).Error
	})
	if err != nil {
		if fallo.mensaje != "" {
			c.JSON(fallo.status, gin.H{"error": fallo.mensaje})
			return
		}
		slog.Error("No se pudo actualizar la cuenta", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, cuenta)
}

// EliminarCuentaBancariaHandler borra una cuenta del usuario actual.
func EliminarCuentaBancariaHandler(c *gin.Context) {
	result := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Delete(&models.CuentaBancaria{})
	if result.Error != nil {
		slog.Error("No se pudo eliminar la cuenta", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cuenta no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuenta eliminada correctamente"})
}

// TiposCuentaHandler devuelve el catálogo estático de tipos de cuenta.
func TiposCuentaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tipos": models.TiposCuenta()})
}
