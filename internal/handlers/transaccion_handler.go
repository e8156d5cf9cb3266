package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lana-app/config"
	"lana-app/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// TransaccionInput es el payload de alta de una transacción.
type TransaccionInput struct {
	UsuarioID     *uint           `json:"usuario_id"`
	CuentaID      *uint           `json:"cuenta_id"`
	CategoriaID   uint            `json:"categoria_id" binding:"required"`
	PresupuestoID *uint           `json:"presupuesto_id"`
	Monto         decimal.Decimal `json:"monto" binding:"required"`
	Tipo          string          `json:"tipo" binding:"required"`
	Descripcion   string          `json:"descripcion"`
	Fecha         string          `json:"fecha" binding:"required"`
}

// TransaccionUpdateInput admite actualización parcial: solo los campos
// presentes se aplican sobre la transacción cargada.
type TransaccionUpdateInput struct {
	CuentaID      *uint            `json:"cuenta_id"`
	CategoriaID   *uint            `json:"categoria_id"`
	PresupuestoID *uint            `json:"presupuesto_id"`
	Monto         *decimal.Decimal `json:"monto"`
	Tipo          *string          `json:"tipo"`
	Descripcion   *string          `json:"descripcion"`
	Fecha         *string          `json:"fecha"`
	Activo        *bool            `json:"activo"`
}

// validarTransaccion aplica las reglas de negocio sobre el estado completo
// de una transacción antes de persistirla. Se usa igual en alta y en
// edición. Devuelve un mensaje de error vacío cuando todo es válido.
func validarTransaccion(db *gorm.DB, usuarioID uint, t *models.Transaccion) string {
	if !models.TipoValido(t.Tipo) {
		return fmt.Sprintf("Tipo no reconocido: %q (usa ingreso o egreso)", t.Tipo)
	}

	if t.CuentaID != nil {
		var cuenta models.CuentaBancaria
		if err := db.Where("id = ? AND usuario_id = ?", *t.CuentaID, usuarioID).First(&cuenta).Error; err != nil {
			return "Cuenta bancaria no válida para este usuario"
		}
	}

	if t.PresupuestoID != nil {
		var presupuesto models.Presupuesto
		if err := db.Where("id = ? AND usuario_id = ?", *t.PresupuestoID, usuarioID).First(&presupuesto).Error; err != nil {
			return "Presupuesto no válido para este usuario"
		}
	}

	var categoria models.Categoria
	if err := db.First(&categoria, t.CategoriaID).Error; err != nil {
		return "Categoría no encontrada"
	}
	if categoria.Tipo != t.Tipo {
		return fmt.Sprintf("La categoría es de tipo '%s', pero enviaste '%s'", categoria.Tipo, t.Tipo)
	}

	if !t.Monto.IsPositive() {
		return "El monto debe ser mayor que cero"
	}
	if t.Monto.GreaterThan(models.MontoMaximo) {
		return fmt.Sprintf("El monto no puede superar %s", models.MontoMaximo.StringFixed(2))
	}

	return ""
}

// filtrosTransaccion aplica los filtros opcionales del listado: rango de
// fechas, tipo, categoría y rango de montos.
func filtrosTransaccion(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	if v := c.Query("fecha_inicio"); v != "" {
		fecha, err := parseFecha(v)
		if err != nil {
			return nil, fmt.Errorf("fecha_inicio inválida: %s", v)
		}
		query = query.Where("fecha >= ?", fecha)
	}
	if v := c.Query("fecha_fin"); v != "" {
		fecha, err := parseFecha(v)
		if err != nil {
			return nil, fmt.Errorf("fecha_fin inválida: %s", v)
		}
		// El límite superior es inclusivo a nivel de día.
		query = query.Where("fecha < ?", fecha.AddDate(0, 0, 1))
	}
	if v := c.Query("tipo"); v != "" {
		if !models.TipoValido(v) {
			return nil, fmt.Errorf("tipo inválido: %s", v)
		}
		query = query.Where("tipo = ?", v)
	}
	if v := c.Query("categoria_id"); v != "" {
		query = query.Where("categoria_id = ?", v)
	}
	if v := c.Query("monto_min"); v != "" {
		monto, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("monto_min inválido: %s", v)
		}
		query = query.Where("monto >= ?", monto)
	}
	if v := c.Query("monto_max"); v != "" {
		monto, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("monto_max inválido: %s", v)
		}
		query = query.Where("monto <= ?", monto)
	}
	return query, nil
}

// ListarTransaccionesHandler devuelve las transacciones del usuario con
// los filtros opcionales. Con el parámetro "page" la respuesta se pagina.
func ListarTransaccionesHandler(c *gin.Context) {
	usuarioID := currentUsuarioID(c)
	query := config.DB.Preload("Categoria").Where("usuario_id = ?", usuarioID).Order("fecha desc, id desc")

	query, err := filtrosTransaccion(c, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var transacciones []models.Transaccion
	if c.Query("page") == "" {
		if err := query.Find(&transacciones).Error; err != nil {
			slog.Error("No se pudieron consultar las transacciones", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
			return
		}
		if transacciones == nil {
			transacciones = make([]models.Transaccion, 0)
		}
		c.JSON(http.StatusOK, transacciones)
		return
	}

	var totalRows int64
	countQuery, _ := filtrosTransaccion(c, config.DB.Model(&models.Transaccion{}).Where("usuario_id = ?", usuarioID))
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&transacciones).Error; err != nil {
		slog.Error("No se pudieron consultar las transacciones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if transacciones == nil {
		transacciones = make([]models.Transaccion, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, transacciones, totalRows))
}

// ObtenerTransaccionHandler busca una transacción por id. Una transacción
// ajena responde 404, igual que una inexistente.
func ObtenerTransaccionHandler(c *gin.Context) {
	var transaccion models.Transaccion
	err := config.DB.Preload("Categoria").
		Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		First(&transaccion).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		return
	}
	c.JSON(http.StatusOK, transaccion)
}

// CrearTransaccionHandler registra una transacción nueva tras validar las
// reglas de negocio. El dueño siempre es el usuario autenticado.
func CrearTransaccionHandler(c *gin.Context) {
	var input TransaccionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	if input.UsuarioID != nil && *input.UsuarioID != usuarioID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No puedes crear transacciones a nombre de otro usuario"})
		return
	}

	fecha, err := parseFecha(input.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, usa el formato YYYY-MM-DD"})
		return
	}

	transaccion := models.Transaccion{
		UsuarioID:     usuarioID,
		CuentaID:      input.CuentaID,
		CategoriaID:   input.CategoriaID,
		PresupuestoID: input.PresupuestoID,
		Monto:         input.Monto,
		Tipo:          input.Tipo,
		Descripcion:   input.Descripcion,
		Fecha:         fecha,
		Activo:        true,
	}

	if msg := validarTransaccion(config.DB, usuarioID, &transaccion); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := config.DB.Create(&transaccion).Error; err != nil {
		slog.Error("No se pudo crear la transacción", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusCreated, transaccion)
}

// ActualizarTransaccionHandler aplica una edición parcial. La validación
// corre sobre el estado resultante (campos existentes más los del payload)
// y la verificación de pertenencia y la escritura comparten transacción.
func ActualizarTransaccionHandler(c *gin.Context) {
	var input TransaccionUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	usuarioID := currentUsuarioID(c)
	var transaccion models.Transaccion
	var fallo struct {
		status  int
		mensaje string
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND usuario_id = ?", c.Param("id"), usuarioID).First(&transaccion).Error; err != nil {
			fallo.status, fallo.mensaje = http.StatusNotFound, "Transacción no encontrada"
			return err
		}

		if input.CuentaID != nil {
			transaccion.CuentaID = input.CuentaID
		}
		if input.CategoriaID != nil {
			transaccion.CategoriaID = *input.CategoriaID
		}
		if input.PresupuestoID != nil {
			transaccion.PresupuestoID = input.PresupuestoID
		}
		if input.Monto != nil {
			transaccion.Monto = *input.Monto
		}
		if input.Tipo != nil {
			transaccion.Tipo = *input.Tipo
		}
		if input.Descripcion != nil {
			transaccion.Descripcion = *input.Descripcion
		}
		if input.Fecha != nil {
			fecha, err := parseFecha(*input.Fecha)
			if err != nil {
				fallo.status, fallo.mensaje = http.StatusBadRequest, "Fecha inválida, usa el formato YYYY-MM-DD"
				return err
			}
			transaccion.Fecha = fecha
		}
		if input.Activo != nil {
			transaccion.Activo = *input.Activo
		}

		if msg := validarTransaccion(tx, usuarioID, &transaccion); msg != "" {
			fallo.status, fallo.mensaje = http.StatusBadRequest, msg
			return gorm.ErrInvalidData
		}

		return tx.Save(&transaccion).Error
	})
	if err != nil {
		if fallo.mensaje != "" {
			c.JSON(fallo.status, gin.H{"error": fallo.mensaje})
			return
		}
		slog.Error("No se pudo actualizar la transacción", "error", err, "usuario_id", usuarioID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, transaccion)
}

// EliminarTransaccionHandler borra una transacción del usuario actual.
func EliminarTransaccionHandler(c *gin.Context) {
	result := config.DB.Where("id = ? AND usuario_id = ?", c.Param("id"), currentUsuarioID(c)).
		Delete(&models.Transaccion{})
	if result.Error != nil {
		slog.Error("No se pudo eliminar la transacción", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Transacción eliminada correctamente"})
}

// CategoriasHandler devuelve el catálogo global de categorías, opcionalmente
// filtrado por tipo.
func CategoriasHandler(c *gin.Context) {
	query := config.DB.Order("tipo asc, nombre asc")
	if v := c.Query("tipo"); v != "" {
		if !models.TipoValido(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo inválido: " + v})
			return
		}
		query = query.Where("tipo = ?", v)
	}

	var categorias []models.Categoria
	if err := query.Find(&categorias).Error; err != nil {
		slog.Error("No se pudieron consultar las categorías", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	c.JSON(http.StatusOK, categorias)
}

// TiposTransaccionHandler devuelve el catálogo cerrado de tipos.
func TiposTransaccionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tipos": models.Tipos()})
}

// ExportarTransaccionesHandler genera un archivo .xlsx con el historial
// filtrado del usuario y lo entrega como descarga.
func ExportarTransaccionesHandler(c *gin.Context) {
	usuarioID := currentUsuarioID(c)
	query := config.DB.Preload("Categoria").Where("usuario_id = ?", usuarioID).Order("fecha desc, id desc")

	query, err := filtrosTransaccion(c, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var transacciones []models.Transaccion
	if err := query.Find(&transacciones).Error; err != nil {
		slog.Error("No se pudieron consultar las transacciones para exportar", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Transacciones"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Fecha", "Tipo", "Categoría", "Monto", "Descripción"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, t := range transacciones {
		row := i + 2
		categoria := ""
		if t.Categoria != nil {
			categoria = t.Categoria.Nombre
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Fecha.Format(fechaISO))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Tipo)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), categoria)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Monto.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Descripcion)
	}

	nombre := fmt.Sprintf("transacciones_%s.xlsx", time.Now().Format(fechaISO))
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		slog.Error("No se pudo escribir el archivo de exportación", "error", err)
	}
}
