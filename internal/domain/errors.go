package domain

import (
	"errors"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrTimeout      = errors.New("tiempo de espera agotado")
	ErrUnreachable  = errors.New("servidor inaccesible")
	ErrNoToken      = errors.New("No hay token")
	ErrBusy         = errors.New("operación en curso")
)

// Mensajes que se muestran tal cual al usuario.
const (
	MsgTimeout     = "Tiempo de espera agotado. Por favor, verifica tu conexión."
	MsgUnreachable = "No se pudo conectar con el servidor. Verifica tu conexión o que el servidor esté funcionando."
	MsgForbidden   = "Acceso denegado. No tienes permisos para ver esta información."
	MsgSessionExp  = "Sesión expirada. Por favor, inicie sesión nuevamente."
	MsgRequired    = "Por favor complete todos los campos obligatorios"
)

// APIError error normalizado de una llamada al backend. Todas las fallas de red
// y de servidor llegan a la capa de aplicación con esta forma: {msg}.
type APIError struct {
	Status int    // código HTTP; 0 si no hubo respuesta
	Msg    string // mensaje para el usuario (el "msg" del servidor o uno fijo)
	Kind   error  // sentinel para errors.Is
}

func (e *APIError) Error() string { return e.Msg }

func (e *APIError) Unwrap() error { return e.Kind }

// KindFromStatus clasifica un código HTTP en un sentinel de dominio.
func KindFromStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrDuplicate
	default:
		return nil
	}
}

// ValidationError falla de validación local; nunca implica una llamada de red.
type ValidationError struct {
	Field string
	Msg   string
	Kind  error
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error {
	if e.Kind == nil {
		return ErrInvalidInput
	}
	return e.Kind
}

// NewValidationError atajo para errores de entrada inválida.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg, Kind: ErrInvalidInput}
}

// UserMessage devuelve el texto a mostrar en una alerta para err.
// Un 403 siempre se presenta con el mensaje fijo de acceso denegado.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrForbidden) {
		return MsgForbidden
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Msg != "" {
		return vErr.Msg
	}
	if errors.Is(err, ErrNoToken) {
		return MsgSessionExp
	}
	if fallback == "" {
		return err.Error()
	}
	return fallback
}
