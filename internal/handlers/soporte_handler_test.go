package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCicloDeVidaTicket(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	w := doRequest(t, r, http.MethodPost, "/soporte/tickets", token, gin.H{
		"asunto":  "No puedo exportar",
		"mensaje": "El archivo descargado llega vacío.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "abierto", body["estado"])
	assert.Equal(t, "media", body["prioridad"])
	id := uint(body["id"].(float64))

	w = doRequest(t, r, http.MethodGet, "/soporte/tickets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeLista(t, w), 1)

	w = doRequest(t, r, http.MethodPut, rutaID("/soporte/tickets", id)+"/cerrar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, rutaID("/soporte/tickets", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "cerrado", body["estado"])
	assert.NotNil(t, body["fecha_cierre"])
}

func TestCrearTicketPrioridadInvalida(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	w := doRequest(t, r, http.MethodPost, "/soporte/tickets", token, gin.H{
		"asunto":    "Urgentísimo",
		"mensaje":   "Por favor atiendan ya.",
		"prioridad": "apocalíptica",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketDeOtroUsuarioInvisible(t *testing.T) {
	r := setupTestApp(t)
	tokenAna := registrarYEntrar(t, r, "ana@example.com")
	tokenBeto := registrarYEntrar(t, r, "beto@example.com")

	w := doRequest(t, r, http.MethodPost, "/soporte/tickets", tokenAna, gin.H{
		"asunto":  "Duda de presupuestos",
		"mensaje": "¿Puedo tener dos presupuestos de la misma categoría?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["id"].(float64))

	w = doRequest(t, r, http.MethodGet, rutaID("/soporte/tickets", id), tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodPut, rutaID("/soporte/tickets", id)+"/cerrar", tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFaq(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	w := doRequest(t, r, http.MethodGet, "/soporte/faq", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	faqs := decodeLista(t, w)
	require.NotEmpty(t, faqs)
	for _, faq := range faqs {
		assert.NotEmpty(t, faq["pregunta"])
		assert.NotEmpty(t, faq["respuesta"])
	}
}
