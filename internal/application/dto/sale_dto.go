package dto

// SaleRecord venta tal como la envía el backend.
type SaleRecord struct {
	ID          string                 `json:"_id"`
	Seller      NameRef                `json:"vendedor"`
	Customer    NameRef                `json:"cliente"`
	Products    []MovementProductRef   `json:"productos"`
	Accessories []MovementAccessoryRef `json:"accesorios"`
	Total       FlexDecimal            `json:"total"`
	Date        FlexTime               `json:"fecha"`
}

// SaleList arreglo de ventas o {ventas: [...]}.
type SaleList []SaleRecord

func (l *SaleList) UnmarshalJSON(data []byte) error {
	var items []SaleRecord
	if err := decodeList(data, "ventas", &items); err != nil {
		return err
	}
	*l = items
	return nil
}
