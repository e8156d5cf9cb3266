package handlers

import (
	"log/slog"
	"net/http"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListarNotificacionesHandler devuelve las notificaciones del usuario, las
// más recientes primero. Con el parámetro "page" la respuesta se pagina.
func ListarNotificacionesHandler(c *gin.Context) {
	usuarioID := currentUsuarioID(c)
	query := config.DB.Where("usuario_id = ?", usuarioID).Order("fecha_creacion desc, id desc")

	var notificaciones []models.Notificacion
	if c.Query("page") == "" {
		if err := query.Find(&notificaciones).Error; err != nil {
			slog.Error("No se pudieron consultar las notificaciones", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
			return
		}
		if notificaciones == nil {
			notificaciones = make([]models.Notificacion, 0)
		}
		c.JSON(http.StatusOK, notificaciones)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Notificacion{}).Where("usuario_id = ?", usuarioID).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&notificaciones).Error; err != nil {
		slog.Error("No se pudieron consultar las notificaciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if notificaciones == nil {
		notificaciones = make([]models.Notificacion, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, notificaciones, totalRows))
}

// MarcarLeidaHandler marca una notificación como leída.
func MarcarLeidaHandler(c *gin.Context) {
	result := config.DB.Model(&models.Notificacion{}).
		Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Update("leido", true)
	if result.Error != nil {
		slog.Error("No se pudo marcar la notificación", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notificación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Notificación marcada como leída"})
}

// MarcarTodasLeidasHandler marca como leídas todas las notificaciones
// pendientes del usuario.
func MarcarTodasLeidasHandler(c *gin.Context) {
	result := config.DB.Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leido = ?", currentUsuarioID(c), false).
		Update("leido", true)
	if result.Error != nil {
		slog.Error("No se pudieron marcar las notificaciones", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Notificaciones marcadas como leídas", "marcadas": result.RowsAffected})
}

// EliminarNotificacionHandler borra una notificación del usuario actual.
func EliminarNotificacionHandler(c *gin.Context) {
	result := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Delete(&models.Notificacion{})
	if result.Error != nil {
		slog.Error("No se pudo eliminar la notificación", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notificación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Notificación eliminada correctamente"})
}

// ContadorNoLeidasHandler devuelve cuántas notificaciones sin leer tiene
// el usuario.
func ContadorNoLeidasHandler(c *gin.Context) {
	var count int64
	err := config.DB.Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leido = ?", currentUsuarioID(c), false).
		Count(&count).Error
	if err != nil {
		slog.Error("No se pudieron contar las notificaciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"no_leidas": count})
}

// obtenerConfiguracion carga la configuración de avisos del usuario y la
// crea con los valores por defecto si todavía no existe.
func obtenerConfiguracion(db *gorm.DB, usuarioID uint) (models.ConfiguracionNotificacion, error) {
	var conf models.ConfiguracionNotificacion
	err := db.Where("usuario_id = ?", usuarioID).First(&conf).Error
	if err == nil {
		return conf, nil
	}

	conf = models.ConfiguracionPorDefecto(usuarioID)
	if err := db.Create(&conf).Error; err != nil {
		return conf, err
	}
	return conf, nil
}

// ObtenerConfiguracionHandler devuelve las preferencias de avisos,
// creándolas de forma perezosa la primera vez.
func ObtenerConfiguracionHandler(c *gin.Context) {
	conf, err := obtenerConfiguracion(config.DB, currentUsuarioID(c))
	if err != nil {
		slog.Error("No se pudo obtener la configuración de notificaciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, conf)
}

// ConfiguracionUpdateInput admite actualización parcial de los canales.
type ConfiguracionUpdateInput struct {
	Email         *bool `json:"email"`
	SMS           *bool `json:"sms"`
	Recordatorios *bool `json:"recordatorios"`
}

// ActualizarConfiguracionHandler modifica los canales presentes en el
// payload. La creación perezosa y la escritura comparten transacción.
func ActualizarConfiguracionHandler(c *gin.Context) {
	var input ConfiguracionUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	var conf models.ConfiguracionNotificacion
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		conf, err = obtenerConfiguracion(tx, currentUsuarioID(c))
		if err != nil {
			return err
		}

		if input.Email != nil {
			conf.Email = *input.Email
		}
		if input.SMS != nil {
			conf.SMS = *input.SMS
		}
		if input.Recordatorios != nil {
			conf.Recordatorios = *input.Recordatorios
		}

		return tx.Save(&conf).Error
	})
	if err != nil {
		slog.Error("No se pudo actualizar la configuración de notificaciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, conf)
}
