package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput es el payload de registro de un usuario nuevo.
type RegisterInput struct {
	Nombre     string `json:"nombre" binding:"required,max=100"`
	Correo     string `json:"correo" binding:"required,email,max=100"`
	Contrasena string `json:"contrasena" binding:"required,min=6"`
}

// LoginInput es el payload de inicio de sesión.
type LoginInput struct {
	Correo     string `json:"correo" binding:"required,email"`
	Contrasena string `json:"contrasena" binding:"required"`
}

// usuarioResumen arma la vista pública de un usuario (sin hash).
func usuarioResumen(u *models.Usuario) gin.H {
	return gin.H{
		"id":             u.ID,
		"nombre":         u.Nombre,
		"correo":         u.Correo,
		"rol":            u.Rol,
		"fecha_registro": u.FechaRegistro,
	}
}

// generarToken firma un JWT HS256 con el id del usuario como subject y
// expiración a una hora.
func generarToken(usuarioID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(usuarioID), 10),
		"exp": time.Now().Add(config.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey())
}

// RegisterHandler da de alta un usuario nuevo. El correo es único; si ya
// existe se responde 409 sin tocar la base.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de registro inválidos: " + err.Error()})
		return
	}

	var existente models.Usuario
	if err := config.DB.Where("correo = ?", input.Correo).First(&existente).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El correo ya está registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("No se pudo generar el hash de la contraseña", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	usuario := models.Usuario{
		Nombre:     input.Nombre,
		Correo:     input.Correo,
		Contrasena: string(hash),
		Rol:        models.RolUsuario,
	}
	if err := config.DB.Create(&usuario).Error; err != nil {
		slog.Error("No se pudo crear el usuario", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	slog.Info("Usuario registrado", "usuario_id", usuario.ID)
	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Usuario registrado exitosamente",
		"usuario": usuarioResumen(&usuario),
	})
}

// LoginHandler verifica las credenciales y emite un token de acceso. El
// mensaje de error es el mismo para correo desconocido y contraseña
// incorrecta.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de acceso inválidos: " + err.Error()})
		return
	}

	var usuario models.Usuario
	if err := config.DB.Where("correo = ?", input.Correo).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(input.Contrasena)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	token, err := generarToken(usuario.ID)
	if err != nil {
		slog.Error("No se pudo firmar el token", "error", err, "usuario_id", usuario.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"usuario":      usuarioResumen(&usuario),
	})
}

// LogoutHandler no invalida nada en el servidor: los tokens son de corta
// vida y expiran solos. El cliente descarta su copia.
func LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mensaje": "Sesión cerrada correctamente"})
}

// ForgotPasswordInput es el payload de solicitud de recuperación.
type ForgotPasswordInput struct {
	Correo string `json:"correo" binding:"required,email"`
}

// ForgotPasswordHandler emite un token opaco de un solo uso con vigencia
// de 30 minutos. El envío por correo es responsabilidad de un colaborador
// externo; aquí solo se persiste y se devuelve.
func ForgotPasswordHandler(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo inválido: " + err.Error()})
		return
	}

	var usuario models.Usuario
	if err := config.DB.Where("correo = ?", input.Correo).First(&usuario).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Correo no registrado"})
		return
	}

	rec := models.Recuperacion{
		UsuarioID:  usuario.ID,
		Token:      uuid.NewString(),
		Expiracion: time.Now().Add(config.ResetTokenTTL),
	}
	if err := config.DB.Create(&rec).Error; err != nil {
		slog.Error("No se pudo guardar el token de recuperación", "error", err, "usuario_id", usuario.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Token generado", "token": rec.Token})
}

// ResetPasswordInput es el payload de restablecimiento de contraseña.
type ResetPasswordInput struct {
	Token           string `json:"token" binding:"required"`
	NuevaContrasena string `json:"nueva_contrasena" binding:"required,min=6"`
}

// ResetPasswordHandler canjea un token de recuperación. Marcar el token
// como usado y guardar el hash nuevo ocurren en la misma transacción.
func ResetPasswordHandler(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	var rec models.Recuperacion
	if err := config.DB.Where("token = ? AND usado = ?", input.Token, false).First(&rec).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token inválido o expirado"})
		return
	}
	if time.Now().After(rec.Expiracion) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token inválido o expirado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NuevaContrasena), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("No se pudo generar el hash de la contraseña", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Usuario{}).Where("id = ?", rec.UsuarioID).
			Update("contrasena", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&rec).Update("usado", true).Error
	})
	if err != nil {
		slog.Error("No se pudo restablecer la contraseña", "error", err, "usuario_id", rec.UsuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Contraseña actualizada correctamente"})
}
