package entity

// Category categoría de dispositivos; el nombre es su identificador funcional.
type Category struct {
	ID          string
	Name        string
	Description string
}
