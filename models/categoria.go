package models

// Tipos de movimiento. Toda categoría y toda transacción pertenecen a
// exactamente uno de los dos.
const (
	TipoIngreso = "ingreso"
	TipoEgreso  = "egreso"
)

// Tipos devuelve el catálogo cerrado de tipos de movimiento.
func Tipos() []string {
	return []string{TipoIngreso, TipoEgreso}
}

// TipoValido indica si s es un tipo de movimiento reconocido.
func TipoValido(s string) bool {
	return s == TipoIngreso || s == TipoEgreso
}

// Categoria es el catálogo global de categorías. No pertenece a ningún
// usuario: todos clasifican sus movimientos contra el mismo catálogo.
type Categoria struct {
	ID     uint   `json:"id" gorm:"primarykey"`
	Nombre string `json:"nombre" gorm:"size:100;not null"`
	Tipo   string `json:"tipo" gorm:"size:10;not null"`
}

func (Categoria) TableName() string { return "categorias" }
