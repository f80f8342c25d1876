package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de disponibilidad.
const (
	StatusAvailable = "Disponible"
	StatusSold      = "Vendido"
)

// Product dispositivo serializado (cada unidad tiene su propio código de barras).
type Product struct {
	ID          string
	Barcode     string
	ModelCode   string
	Serial      string
	Name        string
	Color       string
	Capacity    string
	Price       decimal.Decimal
	Type        string // Nuevo, Seminuevo, Open Box
	Category    string
	Status      string
	Responsible string
	Location    string
	CreatedAt   time.Time
}

// Accessory accesorio con código único.
type Accessory struct {
	ID           string
	Barcode      string
	ModelCode    string
	Name         string
	Price        decimal.Decimal
	Availability string
	Category     string
	Responsible  string
	Location     string
	CreatedAt    time.Time
}
