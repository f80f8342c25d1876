package ports

import "context"

// Claves del almacenamiento persistente del dispositivo.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// KeyValueStore almacenamiento persistente clave/valor del dispositivo.
// Get devuelve ok=false cuando la clave no existe (no es un error).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
