package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada (solo lectura desde la app).
type Sale struct {
	ID       string
	Seller   string
	Customer string
	Items    []MovementItem
	Total    decimal.Decimal
	Date     time.Time
}
