package dto

// AccessoryRecord accesorio tal como lo envía el backend.
type AccessoryRecord struct {
	ID           string      `json:"_id,omitempty"`
	Barcode      string      `json:"codigoBarrasAccs"`
	ModelCode    FlexString  `json:"codigoModeloAccs"`
	Name         string      `json:"nombreAccs"`
	Price        FlexDecimal `json:"precioAccs"`
	Availability string      `json:"disponibilidadAccs,omitempty"`
	Category     NameRef     `json:"categoriaNombre,omitempty"`
	Responsible  NameRef     `json:"responsableAccs,omitempty"`
	Location     string      `json:"locacionAccs,omitempty"`
	AltLocation  string      `json:"ubicacion,omitempty"`
	CreatedAt    FlexTime    `json:"fechaIngreso"`
}

// AccessoryEnvelope respuesta de listarAccesorio/agregarAccesorio: {accesorio}.
type AccessoryEnvelope struct {
	Msg       string           `json:"msg,omitempty"`
	Accessory *AccessoryRecord `json:"accesorio"`
}

// AccessoryList arreglo de accesorios o {accesorios: [...]}.
type AccessoryList []AccessoryRecord

func (l *AccessoryList) UnmarshalJSON(data []byte) error {
	var items []AccessoryRecord
	if err := decodeList(data, "accesorios", &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// CreateAccessoryRequest cuerpo de POST /gt/agregarAccesorio.
type CreateAccessoryRequest struct {
	UniqueCode   string      `json:"codigoUnicoAccs,omitempty"`
	ModelCode    string      `json:"codigoModeloAccs" validate:"required"`
	Name         string      `json:"nombreAccs" validate:"required"`
	Price        FlexDecimal `json:"precioAccs"`
	Availability string      `json:"disponibilidadAccs"`
}

// UpdateAccessoryRequest cuerpo de PUT /gt/actualizarAccesorio/:codigo.
type UpdateAccessoryRequest struct {
	Name         *string      `json:"nombreAccs,omitempty"`
	Price        *FlexDecimal `json:"precioAccs,omitempty"`
	Availability *string      `json:"disponibilidadAccs,omitempty"`
	Location     *string      `json:"locacionAccs,omitempty"`
}
