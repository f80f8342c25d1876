package entity

import "time"

// MovementItem referencia a un producto o accesorio dentro de un movimiento.
type MovementItem struct {
	Barcode string
	Name    string
}

// Movement movimiento registrado por el servidor. Inmutable salvo la observación.
type Movement struct {
	ID              string
	Products        []MovementItem
	Accessories     []MovementItem
	Responsible     []string
	SourceArea      string
	DestinationArea string
	Note            string
	Date            time.Time
}

// Area destino seleccionable.
type Area struct {
	Label string
	Value string
}
