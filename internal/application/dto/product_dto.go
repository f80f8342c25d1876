package dto

// ProductRecord dispositivo tal como lo envía el backend.
type ProductRecord struct {
	ID          string      `json:"_id,omitempty"`
	Barcode     string      `json:"codigoBarras"`
	ModelCode   FlexString  `json:"codigoModelo"`
	Serial      FlexString  `json:"codigoSerial"`
	Name        string      `json:"nombreEquipo"`
	Color       string      `json:"color"`
	Capacity    FlexString  `json:"capacidad"`
	Price       FlexDecimal `json:"precio"`
	Type        string      `json:"tipo"`
	Status      string      `json:"estado,omitempty"`
	Category    NameRef     `json:"categoriaNombre"`
	Responsible NameRef     `json:"responsable,omitempty"`
	Location    string      `json:"locacion,omitempty"`
	AltLocation string      `json:"ubicacion,omitempty"`
	CreatedAt   FlexTime    `json:"fechaIngreso"`
}

// ProductEnvelope respuesta de listarProducto/agregarProducto: {producto}.
type ProductEnvelope struct {
	Msg     string         `json:"msg,omitempty"`
	Product *ProductRecord `json:"producto"`
}

// ProductList respuesta de listados de dispositivos: arreglo o {productos: [...]}.
type ProductList []ProductRecord

func (l *ProductList) UnmarshalJSON(data []byte) error {
	var items []ProductRecord
	if err := decodeList(data, "productos", &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// CreateProductRequest cuerpo de POST /gt/agregarProducto.
type CreateProductRequest struct {
	ModelCode    string      `json:"codigoModelo" validate:"required"`
	Serial       string      `json:"codigoSerial" validate:"required"`
	Name         string      `json:"nombreEquipo" validate:"required"`
	Color        string      `json:"color" validate:"required"`
	Capacity     string      `json:"capacidad" validate:"required"`
	Price        FlexDecimal `json:"precio"`
	Type         string      `json:"tipo" validate:"required"`
	CategoryName string      `json:"categoriaNombre" validate:"required"`
	Status       string      `json:"estado"`
}

// UpdateProductRequest cuerpo de PUT /gt/actualizarProducto/:codigo; solo campos presentes.
type UpdateProductRequest struct {
	Name     *string      `json:"nombreEquipo,omitempty"`
	Color    *string      `json:"color,omitempty"`
	Capacity *string      `json:"capacidad,omitempty"`
	Price    *FlexDecimal `json:"precio,omitempty"`
	Type     *string      `json:"tipo,omitempty"`
	Status   *string      `json:"estado,omitempty"`
	Location *string      `json:"locacion,omitempty"`
}
