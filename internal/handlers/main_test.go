package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lana-app/config"
	"lana-app/internal/routes"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp levanta la aplicación completa contra una base SQLite en
// memoria, con el esquema migrado y el catálogo de categorías cargado.
func setupTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Cada conexión nueva a :memory: sería una base distinta.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	config.DB = db
	config.RDB = nil
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedCategorias(db))

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doRequest ejecuta una petición JSON contra el router de prueba. Con token
// vacío la petición va sin encabezado Authorization.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody interpreta la respuesta como un objeto JSON genérico.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// decodeLista interpreta la respuesta como un arreglo JSON de objetos.
func decodeLista(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// registrarYEntrar da de alta un usuario y devuelve su token de acceso.
func registrarYEntrar(t *testing.T, r *gin.Engine, correo string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"nombre":     "Usuario de prueba",
		"correo":     correo,
		"contrasena": "secreta123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"correo":     correo,
		"contrasena": "secreta123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := decodeBody(t, w)["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// categoriaDeTipo devuelve la primera categoría del catálogo con ese tipo.
func categoriaDeTipo(t *testing.T, tipo string) models.Categoria {
	t.Helper()
	var categoria models.Categoria
	require.NoError(t, config.DB.Where("tipo = ?", tipo).First(&categoria).Error)
	return categoria
}

// crearTransaccion inserta una transacción vía API y devuelve su id.
func crearTransaccion(t *testing.T, r *gin.Engine, token string, body gin.H) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/transacciones", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, ok := decodeBody(t, w)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

// rutaID arma una ruta con el id interpolado.
func rutaID(base string, id uint) string {
	return fmt.Sprintf("%s/%d", base, id)
}

// montoIgual compara un monto de la respuesta JSON por valor numérico,
// sin importar ceros a la derecha.
func montoIgual(t *testing.T, esperado string, got any) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "el monto no llegó como string: %v", got)
	assert.True(t, decimal.RequireFromString(esperado).Equal(decimal.RequireFromString(s)),
		"esperado %s, recibido %s", esperado, s)
}
