package models

// TiposCuenta es el catálogo estático de tipos de cuenta bancaria.
func TiposCuenta() []string {
	return []string{"ahorro", "corriente", "nomina", "inversion"}
}

// CuentaBancaria es una cuenta de banco registrada por el usuario para
// asociar transacciones. El número se guarda tal cual lo captura el usuario.
type CuentaBancaria struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	UsuarioID    uint   `json:"usuario_id" gorm:"index;not null"`
	NombreBanco  string `json:"nombre_banco" gorm:"size:100"`
	NumeroCuenta string `json:"numero_cuenta" gorm:"size:50"`
	TipoCuenta   string `json:"tipo_cuenta" gorm:"size:50"`
}

func (CuentaBancaria) TableName() string { return "cuentas_bancarias" }
