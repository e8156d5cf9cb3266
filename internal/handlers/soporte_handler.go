package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
)

// TicketInput es el payload de alta de un ticket de soporte.
type TicketInput struct {
	Asunto    string `json:"asunto" binding:"required,max=100"`
	Mensaje   string `json:"mensaje" binding:"required"`
	Prioridad string `json:"prioridad"`
}

// CrearTicketHandler registra un ticket de soporte a nombre del usuario
// actual. La prioridad por defecto es media.
func CrearTicketHandler(c *gin.Context) {
	var input TicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	prioridad := models.PrioridadMedia
	if input.Prioridad != "" {
		switch strings.ToLower(input.Prioridad) {
		case models.PrioridadBaja, models.PrioridadMedia, models.PrioridadAlta:
			prioridad = strings.ToLower(input.Prioridad)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prioridad no reconocida: usa baja, media o alta"})
			return
		}
	}

	ticket := models.Soporte{
		UsuarioID: currentUsuarioID(c),
		Asunto:    input.Asunto,
		Mensaje:   input.Mensaje,
		Estado:    models.TicketAbierto,
		Prioridad: prioridad,
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		slog.Error("No se pudo crear el ticket de soporte", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListarTicketsHandler devuelve los tickets del usuario, los más
// recientes primero.
func ListarTicketsHandler(c *gin.Context) {
	var tickets []models.Soporte
	err := config.DB.Where("usuario_id = ?", currentUsuarioID(c)).
		Order("fecha_envio desc, id desc").
		Find(&tickets).Error
	if err != nil {
		slog.Error("No se pudieron consultar los tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if tickets == nil {
		tickets = make([]models.Soporte, 0)
	}
	c.JSON(http.StatusOK, tickets)
}

// ObtenerTicketHandler busca un ticket por id con scoping de dueño.
func ObtenerTicketHandler(c *gin.Context) {
	var ticket models.Soporte
	err := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).First(&ticket).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket no encontrado"})
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// CerrarTicketHandler marca un ticket como cerrado con la fecha actual.
func CerrarTicketHandler(c *gin.Context) {
	ahora := time.Now()
	result := config.DB.Model(&models.Soporte{}).
		Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Updates(map[string]interface{}{"estado": models.TicketCerrado, "fecha_cierre": &ahora})
	if result.Error != nil {
		slog.Error("No se pudo cerrar el ticket", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Ticket cerrado correctamente"})
}

// FaqHandler devuelve las preguntas frecuentes estáticas.
func FaqHandler(c *gin.Context) {
	c.JSON(http.StatusOK, []gin.H{
		{
			"pregunta":  "¿Cómo restablezco mi contraseña?",
			"respuesta": "Ve a la opción '¿Olvidaste tu contraseña?' en la pantalla de inicio de sesión.",
		},
		{
			"pregunta":  "¿Cómo puedo editar una transacción?",
			"respuesta": "Desde el historial, pulsa en la transacción y selecciona 'Editar'.",
		},
		{
			"pregunta":  "¿Mis datos están seguros?",
			"respuesta": "Sí, usamos protocolos seguros y cifrado para proteger tus datos.",
		},
	})
}
