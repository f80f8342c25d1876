package dto

import (
	"encoding/json"
	"strings"
)

// MovementProductRef producto dentro de un movimiento.
type MovementProductRef struct {
	Barcode string `json:"codigoBarras"`
	Name    string `json:"nombreEquipo,omitempty"`
}

// MovementAccessoryRef accesorio dentro de un movimiento.
type MovementAccessoryRef struct {
	Barcode string `json:"codigoBarrasAccs"`
	Name    string `json:"nombreAccs,omitempty"`
}

// RegisterMovementRequest cuerpo de POST /gt/registrarMovimiento.
// Solo viajan códigos de barras; el servidor resuelve el resto.
type RegisterMovementRequest struct {
	Products        []MovementProductRef   `json:"productos"`
	Accessories     []MovementAccessoryRef `json:"accesorios"`
	DestinationArea string                 `json:"areaLlegada"`
	Note            string                 `json:"observacion"`
}

// UpdateNoteRequest cuerpo de PUT /gt/actualizarMovimiento/:id.
type UpdateNoteRequest struct {
	Note string `json:"observacion"`
}

// MovementRecord movimiento tal como lo envía el backend.
type MovementRecord struct {
	ID              string                 `json:"_id"`
	Products        []MovementProductRef   `json:"productos"`
	Accessories     []MovementAccessoryRef `json:"accesorios"`
	Responsible     NameRef                `json:"responsable"`
	SourceArea      string                 `json:"areaSalida"`
	DestinationArea string                 `json:"areaLlegada"`
	Note            string                 `json:"observacion"`
	Date            FlexTime               `json:"fecha"`
}

// MovementEnvelope respuesta de registrar/consultar: el movimiento suelto o {movimiento}.
type MovementEnvelope struct {
	Msg string `json:"msg,omitempty"`
	MovementRecord
	Movement *MovementRecord `json:"movimiento,omitempty"`
}

// Record devuelve el movimiento contenido, si lo hay.
func (e MovementEnvelope) Record() *MovementRecord {
	if e.Movement != nil {
		return e.Movement
	}
	if e.ID != "" {
		r := e.MovementRecord
		return &r
	}
	return nil
}

// MovementList arreglo de movimientos o {movimientos: [...]}.
type MovementList []MovementRecord

func (l *MovementList) UnmarshalJSON(data []byte) error {
	var items []MovementRecord
	if err := decodeList(data, "movimientos", &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// AreaRecord área: texto suelto u objeto {id|_id, name|nombre}.
type AreaRecord struct {
	ID   string
	Name string
}

func (a *AreaRecord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.ID, a.Name = s, s
		return nil
	}
	var obj struct {
		ID     FlexString `json:"id"`
		OID    string     `json:"_id"`
		Name   string     `json:"name"`
		Nombre string     `json:"nombre"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.ID = firstNonEmpty(string(obj.ID), obj.OID)
	a.Name = firstNonEmpty(obj.Name, obj.Nombre)
	if a.Name == "" {
		a.Name = a.ID
	}
	if a.ID == "" {
		a.ID = a.Name
	}
	a.ID, a.Name = strings.TrimSpace(a.ID), strings.TrimSpace(a.Name)
	return nil
}

// AreaList arreglo de áreas o {areas: [...]}.
type AreaList []AreaRecord

func (l *AreaList) UnmarshalJSON(data []byte) error {
	var items []AreaRecord
	if err := decodeList(data, "areas", &items); err != nil {
		return err
	}
	*l = items
	return nil
}
