package handlers_test

import (
	"net/http"
	"testing"

	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearTransaccion(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	id := crearTransaccion(t, r, token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        250.50,
		"tipo":         "egreso",
		"descripcion":  "Despensa de la semana",
		"fecha":        "2025-06-10",
	})

	w := doRequest(t, r, http.MethodGet, rutaID("/transacciones", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "egreso", body["tipo"])
	montoIgual(t, "250.50", body["monto"])
	assert.Equal(t, "Despensa de la semana", body["descripcion"])
}

func TestCrearTransaccionTipoNoCoincide(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoIngreso)

	w := doRequest(t, r, http.MethodPost, "/transacciones", token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        100,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// El mensaje nombra ambos tipos para que el error sea accionable.
	mensaje := decodeBody(t, w)["error"].(string)
	assert.Contains(t, mensaje, "ingreso")
	assert.Contains(t, mensaje, "egreso")
}

func TestCrearTransaccionMontoInvalido(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	w := doRequest(t, r, http.MethodPost, "/transacciones", token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        -5,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El monto debe ser mayor que cero", decodeBody(t, w)["error"])

	w = doRequest(t, r, http.MethodPost, "/transacciones", token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        1000000000.00,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "no puede superar")
}

func TestCrearTransaccionANombreDeOtro(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	w := doRequest(t, r, http.MethodPost, "/transacciones", token, gin.H{
		"usuario_id":   999,
		"categoria_id": categoria.ID,
		"monto":        100,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTransaccionDeOtroUsuarioInvisible(t *testing.T) {
	r := setupTestApp(t)
	tokenAna := registrarYEntrar(t, r, "ana@example.com")
	tokenBeto := registrarYEntrar(t, r, "beto@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	id := crearTransaccion(t, r, tokenAna, gin.H{
		"categoria_id": categoria.ID,
		"monto":        100,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})

	// Para el otro usuario el recurso simplemente no existe.
	w := doRequest(t, r, http.MethodGet, rutaID("/transacciones", id), tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodPut, rutaID("/transacciones", id), tokenBeto, gin.H{"descripcion": "ajena"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, rutaID("/transacciones", id), tokenBeto, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// El dueño la sigue viendo intacta.
	w = doRequest(t, r, http.MethodGet, rutaID("/transacciones", id), tokenAna, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActualizarTransaccionParcial(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	id := crearTransaccion(t, r, token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        100,
		"tipo":         "egreso",
		"descripcion":  "Original",
		"fecha":        "2025-06-10",
	})

	w := doRequest(t, r, http.MethodPut, rutaID("/transacciones", id), token, gin.H{"descripcion": "Corregida"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Corregida", body["descripcion"])
	montoIgual(t, "100", body["monto"])

	// Cambiar solo el tipo deja un estado inconsistente con la categoría.
	w = doRequest(t, r, http.MethodPut, rutaID("/transacciones", id), token, gin.H{"tipo": "ingreso"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// El rechazo no dejó cambios a medias.
	w = doRequest(t, r, http.MethodGet, rutaID("/transacciones", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "egreso", decodeBody(t, w)["tipo"])
}

func TestEliminarTransaccion(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	categoria := categoriaDeTipo(t, models.TipoEgreso)

	id := crearTransaccion(t, r, token, gin.H{
		"categoria_id": categoria.ID,
		"monto":        100,
		"tipo":         "egreso",
		"fecha":        "2025-06-10",
	})

	w := doRequest(t, r, http.MethodDelete, rutaID("/transacciones", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, rutaID("/transacciones", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListarTransaccionesConFiltros(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	ingreso := categoriaDeTipo(t, models.TipoIngreso)
	egreso := categoriaDeTipo(t, models.TipoEgreso)

	crearTransaccion(t, r, token, gin.H{
		"categoria_id": ingreso.ID, "monto": 5000, "tipo": "ingreso", "fecha": "2025-06-01",
	})
	crearTransaccion(t, r, token, gin.H{
		"categoria_id": egreso.ID, "monto": 300, "tipo": "egreso", "fecha": "2025-06-05",
	})
	crearTransaccion(t, r, token, gin.H{
		"categoria_id": egreso.ID, "monto": 800, "tipo": "egreso", "fecha": "2025-07-02",
	})

	w := doRequest(t, r, http.MethodGet, "/transacciones", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLista(t, w), 3)

	w = doRequest(t, r, http.MethodGet, "/transacciones?tipo=egreso", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLista(t, w), 2)

	// El límite superior del rango es inclusivo a nivel de día.
	w = doRequest(t, r, http.MethodGet, "/transacciones?fecha_inicio=2025-06-01&fecha_fin=2025-06-05", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLista(t, w), 2)

	w = doRequest(t, r, http.MethodGet, "/transacciones?monto_min=500", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLista(t, w), 2)

	w = doRequest(t, r, http.MethodGet, "/transacciones?tipo=donativo", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Un monto que no es número se rechaza antes de tocar la base.
	w = doRequest(t, r, http.MethodGet, "/transacciones?monto_min=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "monto_min inválido")

	w = doRequest(t, r, http.MethodGet, "/transacciones?monto_max=1.2.3", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "monto_max inválido")
}

func TestListarTransaccionesPaginado(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	egreso := categoriaDeTipo(t, models.TipoEgreso)

	for i := 0; i < 5; i++ {
		crearTransaccion(t, r, token, gin.H{
			"categoria_id": egreso.ID, "monto": 10 + i, "tipo": "egreso", "fecha": "2025-06-10",
		})
	}

	w := doRequest(t, r, http.MethodGet, "/transacciones?page=1&page_size=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["total_rows"])
	assert.Equal(t, float64(3), body["total_pages"])
	assert.Len(t, body["data"], 2)
}

func TestCatalogosDeTransacciones(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")

	w := doRequest(t, r, http.MethodGet, "/transacciones/tipos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []any{"ingreso", "egreso"}, decodeBody(t, w)["tipos"])

	w = doRequest(t, r, http.MethodGet, "/transacciones/categorias?tipo=ingreso", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, cat := range decodeLista(t, w) {
		assert.Equal(t, "ingreso", cat["tipo"])
	}
}

func TestExportarTransacciones(t *testing.T) {
	r := setupTestApp(t)
	token := registrarYEntrar(t, r, "ana@example.com")
	egreso := categoriaDeTipo(t, models.TipoEgreso)

	crearTransaccion(t, r, token, gin.H{
		"categoria_id": egreso.ID, "monto": 300, "tipo": "egreso", "fecha": "2025-06-05",
	})

	w := doRequest(t, r, http.MethodGet, "/transacciones/exportar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}
