// Package movement contiene el flujo de registro de movimientos: escaneo,
// borrador local y envío al backend.
package movement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/application/validation"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// Mensajes del flujo.
const (
	MsgDuplicateProduct   = "Este producto ya fue agregado"
	MsgDuplicateAccessory = "Este accesorio ya fue agregado"
	MsgAreaRequired       = "Seleccione el área de llegada"
	MsgNoteRequired       = "Ingrese una observación"
	MsgLinesRequired      = "Agregue al menos un producto o accesorio"
	MsgRegistered         = "Movimiento registrado correctamente"
)

// ErrNotScanning se devuelve al recibir un código sin escaneo activo.
var ErrNotScanning = errors.New("no hay un escaneo activo")

// Backend operaciones remotas que usa el flujo.
type Backend interface {
	ListAreas(ctx context.Context) ([]entity.Area, error)
	FindProductByBarcode(ctx context.Context, code string) (*entity.ScannedProductLine, error)
	FindAccessoryByBarcode(ctx context.Context, code string) (*entity.ScannedAccessoryLine, error)
	SubmitMovement(ctx context.Context, draft entity.MovementDraft) (*entity.Movement, error)
}

var _ Backend = (*service.MovementService)(nil)

// Scanner fuente de códigos de barras. io.EOF significa que el usuario canceló.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// State estado del flujo.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

type submission struct {
	DestinationArea string `json:"area" validate:"required"`
	Note            string `json:"observacion" validate:"required"`
	Lines           int    `json:"lineas" validate:"gt=0"`
}

var submissionMessages = validation.Messages{
	"area":        MsgAreaRequired,
	"observacion": MsgNoteRequired,
	"lineas":      MsgLinesRequired,
}

// Workflow borrador de movimiento con su máquina de estados.
// Seguro para uso concurrente; las llamadas de red se hacen sin tomar el lock.
type Workflow struct {
	backend  Backend
	notify   ports.Notifier
	log      *logger.Logger
	validate *validation.Validator

	mu          sync.Mutex
	state       State
	scanKind    entity.ItemKind
	scanSeq     uint64
	lookingUp   bool
	draft       entity.MovementDraft
	areas       []entity.Area
	areasLoaded bool
}

func NewWorkflow(backend Backend, notify ports.Notifier, log *logger.Logger) *Workflow {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = ports.NotifierFunc(func(string, string) {})
	}
	return &Workflow{
		backend:  backend,
		notify:   notify,
		log:      log.Named("movement"),
		validate: validation.New(),
	}
}

// LoadAreas carga las áreas destino una vez; las siguientes llamadas usan la copia en memoria.
func (w *Workflow) LoadAreas(ctx context.Context) ([]entity.Area, error) {
	w.mu.Lock()
	if w.areasLoaded {
		out := append([]entity.Area(nil), w.areas...)
		w.mu.Unlock()
		return out, nil
	}
	w.mu.Unlock()

	areas, err := w.backend.ListAreas(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("no se pudieron cargar las áreas")
		w.notify.Alert(ports.TitleError, domain.UserMessage(err, service.MsgAreasError))
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.areas = append([]entity.Area(nil), areas...)
	w.areasLoaded = true
	return append([]entity.Area(nil), areas...), nil
}

// StartScan abre el escáner para un tipo de línea.
func (w *Workflow) StartScan(kind entity.ItemKind) error {
	if !kind.Valid() {
		return domain.NewValidationError("tipo", fmt.Sprintf("Tipo de artículo inválido: %s", kind))
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return domain.ErrBusy
	}
	w.state = StateScanning
	w.scanKind = kind
	w.scanSeq++
	return nil
}

// CancelScan cierra el escáner sin modificar el borrador.
func (w *Workflow) CancelScan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateScanning {
		w.state = StateIdle
		w.scanSeq++
	}
}

// OnScanned procesa un código leído. Duplicados y fallas de búsqueda dejan el
// escáner abierto y el borrador intacto; un alta exitosa vuelve a Idle.
func (w *Workflow) OnScanned(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	w.mu.Lock()
	if w.state != StateScanning {
		w.mu.Unlock()
		return ErrNotScanning
	}
	if w.lookingUp {
		w.mu.Unlock()
		return domain.ErrBusy
	}
	kind, seq := w.scanKind, w.scanSeq
	if w.draft.Contains(kind, code) {
		w.mu.Unlock()
		return w.duplicate(kind, code)
	}
	w.lookingUp = true
	w.mu.Unlock()

	product, accessory, err := w.lookup(ctx, kind, code)

	w.mu.Lock()
	w.lookingUp = false
	if err != nil {
		w.mu.Unlock()
		w.log.Debug().Err(err).Str("code", code).Str("kind", string(kind)).Msg("búsqueda por código fallida")
		w.notify.Alert(ports.TitleError, domain.UserMessage(err, lookupFallback(kind)))
		return err
	}
	if w.state != StateScanning || w.scanSeq != seq {
		w.mu.Unlock()
		return context.Canceled
	}
	// Otro código igual pudo entrar mientras se buscaba.
	barcode := code
	if product != nil {
		barcode = product.Barcode
	} else if accessory != nil {
		barcode = accessory.Barcode
	}
	if w.draft.Contains(kind, barcode) {
		w.mu.Unlock()
		return w.duplicate(kind, barcode)
	}
	if product != nil {
		w.draft.Products = append(w.draft.Products, *product)
	} else {
		w.draft.Accessories = append(w.draft.Accessories, *accessory)
	}
	w.state = StateIdle
	w.scanSeq++
	w.mu.Unlock()

	w.log.Debug().Str("code", barcode).Str("kind", string(kind)).Msg("línea agregada")
	return nil
}

func (w *Workflow) lookup(ctx context.Context, kind entity.ItemKind, code string) (*entity.ScannedProductLine, *entity.ScannedAccessoryLine, error) {
	if kind == entity.KindProduct {
		p, err := w.backend.FindProductByBarcode(ctx, code)
		return p, nil, err
	}
	a, err := w.backend.FindAccessoryByBarcode(ctx, code)
	return nil, a, err
}

func (w *Workflow) duplicate(kind entity.ItemKind, code string) error {
	msg := MsgDuplicateProduct
	if kind == entity.KindAccessory {
		msg = MsgDuplicateAccessory
	}
	w.notify.Alert(ports.TitleWarning, msg)
	return &domain.ValidationError{Field: "codigo", Msg: msg, Kind: fmt.Errorf("%s: %w", code, domain.ErrDuplicate)}
}

func lookupFallback(kind entity.ItemKind) string {
	if kind == entity.KindAccessory {
		return service.MsgAccessoryNotFound
	}
	return service.MsgProductNotFound
}

// RunScan abre el escáner y procesa códigos hasta un alta exitosa o hasta que
// el escáner devuelva io.EOF (cancelación, sin error).
func (w *Workflow) RunScan(ctx context.Context, kind entity.ItemKind, sc Scanner) error {
	if err := w.StartScan(kind); err != nil {
		return err
	}
	for {
		code, err := sc.Scan(ctx)
		if err != nil {
			w.CancelScan()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		err = w.OnScanned(ctx, code)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, ErrNotScanning) {
			return nil
		}
		if ctx.Err() != nil {
			w.CancelScan()
			return ctx.Err()
		}
	}
}

// RemoveLine quita la línea idx de la lista del tipo indicado.
func (w *Workflow) RemoveLine(kind entity.ItemKind, idx int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return domain.ErrBusy
	}
	switch kind {
	case entity.KindProduct:
		if idx < 0 || idx >= len(w.draft.Products) {
			return domain.NewValidationError("indice", "Línea inexistente")
		}
		w.draft.Products = append(w.draft.Products[:idx:idx], w.draft.Products[idx+1:]...)
	case entity.KindAccessory:
		if idx < 0 || idx >= len(w.draft.Accessories) {
			return domain.NewValidationError("indice", "Línea inexistente")
		}
		w.draft.Accessories = append(w.draft.Accessories[:idx:idx], w.draft.Accessories[idx+1:]...)
	default:
		return domain.NewValidationError("tipo", fmt.Sprintf("Tipo de artículo inválido: %s", kind))
	}
	return nil
}

func (w *Workflow) SetDestinationArea(area string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return domain.ErrBusy
	}
	w.draft.DestinationArea = area
	return nil
}

func (w *Workflow) SetNote(note string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return domain.ErrBusy
	}
	w.draft.Note = note
	return nil
}

// Draft copia del borrador actual.
func (w *Workflow) Draft() entity.MovementDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit valida y registra el borrador. Una validación fallida no llama al backend.
// Con éxito el borrador se vacía; con error se conserva para reintentar.
func (w *Workflow) Submit(ctx context.Context) (*entity.Movement, error) {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return nil, domain.ErrBusy
	}
	draft := w.draft.Clone()
	draft.DestinationArea = strings.TrimSpace(draft.DestinationArea)
	draft.Note = strings.TrimSpace(draft.Note)
	if err := w.validate.Check(submission{
		DestinationArea: draft.DestinationArea,
		Note:            draft.Note,
		Lines:           draft.Lines(),
	}, submissionMessages); err != nil {
		w.mu.Unlock()
		w.notify.Alert(ports.TitleError, domain.UserMessage(err, domain.MsgRequired))
		return nil, err
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	mov, err := w.backend.SubmitMovement(ctx, draft)

	w.mu.Lock()
	w.state = StateIdle
	if err == nil {
		w.draft = entity.MovementDraft{}
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn().Err(err).Int("lines", draft.Lines()).Msg("registro de movimiento fallido")
		w.notify.Alert(ports.TitleError, domain.UserMessage(err, service.MsgRegisterError))
		return nil, err
	}
	w.log.Info().Str("area", draft.DestinationArea).Int("lines", draft.Lines()).Msg("movimiento registrado")
	w.notify.Alert(ports.TitleSuccess, MsgRegistered)
	return mov, nil
}
