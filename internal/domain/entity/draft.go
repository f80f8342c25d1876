package entity

// ItemKind tipo de línea que se escanea.
type ItemKind string

const (
	KindProduct   ItemKind = "producto"
	KindAccessory ItemKind = "accesorio"
)

// Valid indica si k es uno de los tipos conocidos.
func (k ItemKind) Valid() bool {
	return k == KindProduct || k == KindAccessory
}

// ScannedProductLine producto ya resuelto por código de barras, pendiente de mover.
type ScannedProductLine struct {
	Barcode     string
	DisplayName string
	Capacity    string
	Color       string
	Serial      string
}

// ScannedAccessoryLine accesorio resuelto, pendiente de mover.
type ScannedAccessoryLine struct {
	Barcode     string
	DisplayName string
}

// MovementDraft borrador local de un movimiento. Se descarta al registrar con éxito.
type MovementDraft struct {
	Products        []ScannedProductLine
	Accessories     []ScannedAccessoryLine
	DestinationArea string
	Note            string
}

// Lines cantidad total de líneas escaneadas.
func (d MovementDraft) Lines() int {
	return len(d.Products) + len(d.Accessories)
}

// Contains indica si el código ya está en la lista de su tipo.
func (d MovementDraft) Contains(kind ItemKind, barcode string) bool {
	switch kind {
	case KindProduct:
		for _, p := range d.Products {
			if p.Barcode == barcode {
				return true
			}
		}
	case KindAccessory:
		for _, a := range d.Accessories {
			if a.Barcode == barcode {
				return true
			}
		}
	}
	return false
}

// Clone copia profunda; los llamadores no comparten slices con el workflow.
func (d MovementDraft) Clone() MovementDraft {
	out := d
	out.Products = append([]ScannedProductLine(nil), d.Products...)
	out.Accessories = append([]ScannedAccessoryLine(nil), d.Accessories...)
	return out
}
