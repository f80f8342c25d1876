package ports

import (
	"context"
	"net/url"
)

// Gateway puerto de salida hacia el backend REST.
// Las implementaciones adjuntan el token, aplican el timeout y devuelven
// errores normalizados (*domain.APIError). out puede ser nil.
type Gateway interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}
