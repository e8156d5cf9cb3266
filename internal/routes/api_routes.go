package routes

import (
	"lana-app/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registra todos los endpoints que requieren un usuario
// autenticado.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	// --- USUARIOS ---
	usuarios := api.Group("/usuarios")
	{
		usuarios.GET("/perfil", handlers.PerfilHandler)
		usuarios.PUT("/perfil", handlers.ActualizarPerfilHandler)
		usuarios.PUT("/cambiar-contrasena", handlers.CambiarContrasenaHandler)
		usuarios.DELETE("/cuenta", handlers.EliminarCuentaHandler)
	}

	// --- CUENTAS BANCARIAS ---
	cuentas := api.Group("/cuentas-bancarias")
	{
		cuentas.GET("", handlers.ListarCuentasHandler)
		cuentas.POST("", handlers.CrearCuentaHandler)
		cuentas.GET("/tipos", handlers.TiposCuentaHandler)
		cuentas.GET("/:id", handlers.ObtenerCuentaHandler)
		cuentas.PUT("/:id", handlers.ActualizarCuentaHandler)
		cuentas.DELETE("/:id", handlers.EliminarCuentaBancariaHandler)
	}

	// --- TRANSACCIONES ---
	transacciones := api.Group("/transacciones")
	{
		transacciones.GET("", handlers.ListarTransaccionesHandler)
		transacciones.POST("", handlers.CrearTransaccionHandler)
		// Los catálogos van antes que /:id para que gin no los confunda
		// con un identificador.
		transacciones.GET("/categorias", handlers.CategoriasHandler)
		transacciones.GET("/tipos", handlers.TiposTransaccionHandler)
		transacciones.GET("/exportar", handlers.ExportarTransaccionesHandler)
		transacciones.GET("/:id", handlers.ObtenerTransaccionHandler)
		transacciones.PUT("/:id", handlers.ActualizarTransaccionHandler)
		transacciones.DELETE("/:id", handlers.EliminarTransaccionHandler)
	}

	// --- PRESUPUESTOS ---
	presupuestos := api.Group("/presupuestos")
	{
		presupuestos.GET("", handlers.ListarPresupuestosHandler)
		presupuestos.POST("", handlers.CrearPresupuestoHandler)
		presupuestos.GET("/resumen", handlers.ResumenPresupuestosHandler)
		presupuestos.GET("/alertas", handlers.AlertasPresupuestosHandler)
		presupuestos.GET("/:id", handlers.ObtenerPresupuestoHandler)
		presupuestos.PUT("/:id", handlers.ActualizarPresupuestoHandler)
		presupuestos.DELETE("/:id", handlers.EliminarPresupuestoHandler)
	}

	// --- PAGOS FIJOS ---
	pagosFijos := api.Group("/pagos-fijos")
	{
		pagosFijos.GET("", handlers.ListarPagosFijosHandler)
		pagosFijos.POST("", handlers.CrearPagoFijoHandler)
		pagosFijos.GET("/proximos", handlers.ProximosPagosHandler)
		pagosFijos.GET("/frecuencias", handlers.FrecuenciasHandler)
		pagosFijos.GET("/:id", handlers.ObtenerPagoFijoHandler)
		pagosFijos.PUT("/:id", handlers.ActualizarPagoFijoHandler)
		pagosFijos.PUT("/:id/pausar", handlers.PausarPagoFijoHandler)
		pagosFijos.PUT("/:id/reanudar", handlers.ReanudarPagoFijoHandler)
		pagosFijos.DELETE("/:id", handlers.EliminarPagoFijoHandler)
	}

	// --- DASHBOARD ---
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", handlers.DashboardHandler)
		dashboard.GET("/balance", handlers.BalanceHandler)
		dashboard.GET("/resumen", handlers.ResumenDashboardHandler)
	}

	// --- GRÁFICAS ---
	graficas := api.Group("/graficas")
	{
		graficas.GET("/ingresos-gastos", handlers.GraficaIngresosGastosHandler)
		graficas.GET("/distribucion-categoria", handlers.GraficaDistribucionCategoriaHandler)
	}

	// --- NOTIFICACIONES ---
	notificaciones := api.Group("/notificaciones")
	{
		notificaciones.GET("", handlers.ListarNotificacionesHandler)
		notificaciones.GET("/configuracion", handlers.ObtenerConfiguracionHandler)
		notificaciones.PUT("/configuracion", handlers.ActualizarConfiguracionHandler)
		notificaciones.GET("/contador-no-leidas", handlers.ContadorNoLeidasHandler)
		notificaciones.PUT("/marcar-todas-leidas", handlers.MarcarTodasLeidasHandler)
		notificaciones.PUT("/:id/leer", handlers.MarcarLeidaHandler)
		notificaciones.DELETE("/:id", handlers.EliminarNotificacionHandler)
	}

	// --- SOPORTE ---
	soporte := api.Group("/soporte")
	{
		soporte.GET("/faq", handlers.FaqHandler)
		soporte.POST("/tickets", handlers.CrearTicketHandler)
		soporte.GET("/tickets", handlers.ListarTicketsHandler)
		soporte.GET("/tickets/:id", handlers.ObtenerTicketHandler)
		soporte.PUT("/tickets/:id/cerrar", handlers.CerrarTicketHandler)
	}
}
