package entity

import "time"

// ProductGroup agrupación de dispositivos iguales (stock o historial).
type ProductGroup struct {
	Type      string
	ModelCode string
	Name      string
	Color     string
	Capacity  string
	Quantity  int
	Barcodes  []string
	Date      time.Time
}

// AccessoryGroup agrupación de accesorios iguales.
type AccessoryGroup struct {
	ModelCode string
	Name      string
	Quantity  int
	Barcodes  []string
	Date      time.Time
}

// StockSummary stock disponible devuelto por el backend.
type StockSummary struct {
	Products    []ProductGroup
	Accessories []AccessoryGroup
}

// StockFilter filtros opcionales de stockDisponible.
type StockFilter struct {
	Name     string
	Capacity string
	Category string
}
