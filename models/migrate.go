package models

import "gorm.io/gorm"

// Migrate crea o actualiza el esquema completo de la aplicación.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Usuario{},
		&Recuperacion{},
		&Categoria{},
		&CuentaBancaria{},
		&Transaccion{},
		&Presupuesto{},
		&PagoFijo{},
		&Notificacion{},
		&ConfiguracionNotificacion{},
		&Soporte{},
	)
}

// SeedCategorias carga el catálogo global de categorías la primera vez que
// arranca la aplicación. Si ya existen categorías no hace nada.
func SeedCategorias(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Categoria{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categorias := []Categoria{
		{Nombre: "Salario", Tipo: TipoIngreso},
		{Nombre: "Ventas", Tipo: TipoIngreso},
		{Nombre: "Inversiones", Tipo: TipoIngreso},
		{Nombre: "Otros ingresos", Tipo: TipoIngreso},
		{Nombre: "Alimentación", Tipo: TipoEgreso},
		{Nombre: "Transporte", Tipo: TipoEgreso},
		{Nombre: "Vivienda", Tipo: TipoEgreso},
		{Nombre: "Servicios", Tipo: TipoEgreso},
		{Nombre: "Entretenimiento", Tipo: TipoEgreso},
		{Nombre: "Salud", Tipo: TipoEgreso},
		{Nombre: "Educación", Tipo: TipoEgreso},
		{Nombre: "Otros gastos", Tipo: TipoEgreso},
	}
	return db.Create(&categorias).Error
}
