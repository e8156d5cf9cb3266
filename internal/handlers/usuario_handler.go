package handlers

import (
	"log/slog"
	"net/http"

	"lana-app/config"
	"lana-app/internal/middleware"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PerfilHandler devuelve el perfil del usuario autenticado.
func PerfilHandler(c *gin.Context) {
	var usuario models.Usuario
	if err := config.DB.First(&usuario, currentUsuarioID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, usuarioResumen(&usuario))
}

// ActualizarPerfilInput admite actualización parcial: solo se tocan los
// campos presentes en el payload.
type ActualizarPerfilInput struct {
	Nombre *string `json:"nombre" binding:"omitempty,min=1,max=100"`
	Correo *string `json:"correo" binding:"omitempty,email,max=100"`
}

// ActualizarPerfilHandler modifica nombre y/o correo del usuario actual.
// Un correo nuevo debe seguir siendo único; la verificación de unicidad y
// la escritura comparten transacción.
func ActualizarPerfilHandler(c *gin.Context) {
	var input ActualizarPerfilInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var usuario models.Usuario
	var fallo struct {
		status  int
		mensaje string
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&usuario, usuarioID).Error; err != nil {
			fallo.status, fallo.mensaje = http.StatusNotFound, "Usuario no encontrado"
			return err
		}

		if input.Correo != nil {
			var existente models.Usuario
			err := tx.Where("correo = ? AND id <> ?", *input.Correo, usuarioID).First(&existente).Error
			if err == nil {
				fallo.status, fallo.mensaje = http.StatusConflict, "El correo ya está en uso"
				return gorm.ErrInvalidData
			}
			usuario.Correo = *input.Correo
		}
		if input.Nombre != nil {
			usuario.Nombre = *input.Nombre
		}

		return tx.Save(&usuario).Error
	})
	if err != nil {
		if fallo.mensaje != "" {
			c.JSON(fallo.status, gin.H{"error": fallo.mensaje})
			return
		}
		slog.Error("No se pudo actualizar el perfil", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	middleware.InvalidarUsuarioCache(usuarioID)
	c.JSON(http.StatusOK, usuarioResumen(&usuario))
}

// CambiarContrasenaInput es el payload de cambio de contraseña.
type CambiarContrasenaInput struct {
	ContrasenaActual string `json:"contrasena_actual" binding:"required"`
	ContrasenaNueva  string `json:"contrasena_nueva" binding:"required,min=6"`
}

// CambiarContrasenaHandler verifica la contraseña actual y guarda el hash
// de la nueva. Deja una notificación dentro de la aplicación; si esa parte
// falla la operación no se revierte.
func CambiarContrasenaHandler(c *gin.Context) {
	var input CambiarContrasenaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var usuario models.Usuario
	if err := config.DB.First(&usuario, usuarioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(input.ContrasenaActual)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña actual no es correcta"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.ContrasenaNueva), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("No se pudo generar el hash de la contraseña", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if err := config.DB.Model(&usuario).Update("contrasena", string(hash)).Error; err != nil {
		slog.Error("No se pudo guardar la contraseña nueva", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	middleware.InvalidarUsuarioCache(usuarioID)

	// Aviso de cortesía; un fallo aquí no afecta el cambio ya hecho.
	noti := models.Notificacion{
		UsuarioID: usuarioID,
		Mensaje:   "Tu contraseña fue actualizada. Si no fuiste tú, contacta a soporte.",
	}
	if err := config.DB.Create(&noti).Error; err != nil {
		slog.Warn("No se pudo crear la notificación de cambio de contraseña", "error", err, "usuario_id", usuarioID)
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Contraseña actualizada correctamente"})
}

// EliminarCuentaInput exige confirmar la contraseña para borrar la cuenta.
type EliminarCuentaInput struct {
	Contrasena string `json:"contrasena" binding:"required"`
}

// EliminarCuentaHandler borra al usuario y todo lo que le pertenece en una
// sola transacción.
func EliminarCuentaHandler(c *gin.Context) {
	var input EliminarCuentaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Debes confirmar tu contraseña"})
		return
	}

	usuarioID := currentUsuarioID(c)
	var usuario models.Usuario
	if err := config.DB.First(&usuario, usuarioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(input.Contrasena)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña no es correcta"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&models.Transaccion{},
			&models.Presupuesto{},
			&models.PagoFijo{},
			&models.CuentaBancaria{},
			&models.Notificacion{},
			&models.ConfiguracionNotificacion{},
			&models.Soporte{},
			&models.Recuperacion{},
		}
		for _, m := range owned {
			if err := tx.Where("usuario_id = ?", usuarioID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&usuario).Error
	})
	if err != nil {
		slog.Error("No se pudo eliminar la cuenta", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	middleware.InvalidarUsuarioCache(usuarioID)
	slog.Info("Cuenta eliminada", "usuario_id", usuarioID)
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cuenta eliminada correctamente"})
}
