package dto

// ProductGroupRecord fila de dispositivos agrupados en stockDisponible.
type ProductGroupRecord struct {
	Type      string     `json:"tipo"`
	ModelCode FlexString `json:"codigoModelo"`
	Name      string     `json:"nombreEquipo"`
	Color     string     `json:"color"`
	Capacity  FlexString `json:"capacidad"`
	Quantity  int        `json:"cantidad"`
	Barcodes  []string   `json:"codigoB"`
}

// AccessoryGroupRecord fila de accesorios agrupados en stockDisponible.
type AccessoryGroupRecord struct {
	ModelCode FlexString `json:"codigoModeloAccs"`
	Name      string     `json:"nombreAccs"`
	Quantity  int        `json:"cantidad"`
	Barcodes  []string   `json:"codigoB"`
}

// StockResponse respuesta de GET /gt/stockDisponible.
type StockResponse struct {
	Products    []ProductGroupRecord   `json:"productos"`
	Accessories []AccessoryGroupRecord `json:"accesorios"`
}
