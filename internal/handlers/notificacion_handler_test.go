package handlers_test

import (
	"net/http"
	"testing"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sembrarNotificacion(t *testing.T, correo, mensaje string) models.Notificacion {
	t.Helper()
	var usuario models.Usuario
	require.NoError(t, config.DB.Where("correo = ?", correo).First(&usuario).Error)

	noti := models.Notificacion{UsuarioID: usuario.ID, Mensaje: mensaje}
	require.NoError(t, config.DB.Create(&noti).Error)
	return noti
}

func TestNotificacionesLecturaYContador(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	sembrarNotificacion(t, "ana@example.com", "Primer aviso")
	segunda := sembrarNotificacion(t, "ana@example.com", "Segundo aviso")

	w := doRequest(t, r, http.MethodGet, "/notificaciones", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lista := decodeLista(t, w)
	require.Len(t, lista, 2)
	// La más reciente aparece primero.
	assert.Equal(t, "Segundo aviso", lista[0]["mensaje"])

	w = doRequest(t, r, http.MethodGet, "/notificaciones/contador-no-leidas", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["no_leidas"])

	w = doRequest(t, r, http.MethodPut, rutaID("/notificaciones", segunda.ID)+"/leer", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/notificaciones/contador-no-leidas", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["no_leidas"])

	w = doRequest(t, r, http.MethodPut, "/notificaciones/marcar-todas-leidas", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["marcadas"])

	w = doRequest(t, r, http.MethodGet, "/notificaciones/contador-no-leidas", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["no_leidas"])
}

func TestNotificacionDeOtroUsuarioInvisible(t *testing.T) {
	r := setupTestApp(t)
	registrarYEntrar(t, r, "ana@example.com")
	tokenBeto := registrarYEntrar(t, r, "beto@example.com")

	noti := sembrarNotificacion(t, "ana@example.com", "Aviso privado")

	w := doRequest(t, r, http.MethodPut, rutaID("/notificaciones", noti.ID)+"/leer", tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, rutaID("/notificaciones", noti.ID), tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfiguracionNotificacionesPorDefecto(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	// La primera consulta crea la configuración con los valores iniciales.
	w := doRequest(t, r, http.MethodGet, "/notificaciones/configuracion", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["email"])
	assert.Equal(t, false, body["sms"])
	assert.Equal(t, true, body["recordatorios"])
}

func TestActualizarConfiguracionParcial(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	w := doRequest(t, r, http.MethodPut, "/notificaciones/configuracion", token, gin.H{"sms": true})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["sms"])
	// Los canales no mencionados conservan su valor.
	assert.Equal(t, true, body["email"])
	assert.Equal(t, true, body["recordatorios"])
}
