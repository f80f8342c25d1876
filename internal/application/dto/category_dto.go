package dto

// CategoryRecord categoría del backend.
type CategoryRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"nombreCategoria"`
	Description string `json:"descripcionCategoria"`
}

// CategoryList arreglo de categorías o {categorias: [...]}.
type CategoryList []CategoryRecord

func (l *CategoryList) UnmarshalJSON(data []byte) error {
	var items []CategoryRecord
	if err := decodeList(data, "categorias", &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// CategoryEnvelope respuesta de listarCategoria/:id; acepta el objeto suelto o {categoria}.
type CategoryEnvelope struct {
	CategoryRecord
	Category *CategoryRecord `json:"categoria,omitempty"`
}
