package memory

import (
	"fmt"

	"github.com/jhoicas/bodega-app/internal/domain"
)

func errDuplicate(kind, key string) error {
	return fmt.Errorf("%s %q ya existe: %w", kind, key, domain.ErrDuplicate)
}

func errNotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, domain.ErrNotFound)
}
