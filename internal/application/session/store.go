// Package session mantiene el estado de autenticación del proceso: cargando,
// sin sesión o autenticado con un usuario. Es el único estado compartido mutable.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/bodega-app/internal/application/service"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// State estado de la sesión.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "cargando"
	case StateUnauthenticated:
		return "sin sesión"
	case StateAuthenticated:
		return "autenticado"
	default:
		return "desconocido"
	}
}

var _ Authenticator = (*service.AuthService)(nil)

// Authenticator operaciones de la fachada de auth que usa el store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context) error
	StoredSession(ctx context.Context) (token string, user *entity.User, err error)
}

// Listener recibe cada cambio de estado.
type Listener func(State, *entity.User)

// Store estado de sesión inyectable. Ciclo de vida: New → Init → ... → Close.
type Store struct {
	auth Authenticator
	log  *logger.Logger

	mu        sync.RWMutex
	state     State
	user      *entity.User
	listeners map[int]Listener
	nextID    int
	closed    bool
}

func New(auth Authenticator, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{auth: auth, log: log.Named("session"), state: StateLoading, listeners: map[int]Listener{}}
}

// Init restaura la sesión persistida sin validarla contra el servidor.
// Un usuario persistido ilegible se registra y se trata como sesión ausente;
// un fallo del almacenamiento deja el estado sin sesión y se devuelve.
func (s *Store) Init(ctx context.Context) error {
	_, user, err := s.auth.StoredSession(ctx)
	switch {
	case errors.Is(err, service.ErrCorruptSession):
		s.log.Warn().Err(err).Msg("no se pudo restaurar la sesión")
		user = nil
	case err != nil:
		s.set(StateUnauthenticated, nil)
		return err
	}
	if user != nil {
		s.set(StateAuthenticated, user)
		s.log.Info().Str("user_id", user.ID).Msg("sesión restaurada")
		return nil
	}
	s.set(StateUnauthenticated, nil)
	return nil
}

// Login delega en la fachada; si falla el estado no cambia y se propaga el error.
func (s *Store) Login(ctx context.Context, email, password string) (*entity.User, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user := res.User
	s.set(StateAuthenticated, &user)
	return &user, nil
}

// Logout borra la sesión persistida y pasa a sin sesión.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		return err
	}
	s.set(StateUnauthenticated, nil)
	return nil
}

// State estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading true hasta que Init termina.
func (s *Store) IsLoading() bool {
	return s.State() == StateLoading
}

// User copia del usuario autenticado o nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// RequireUser usuario autenticado o domain.ErrUnauthorized; decide si hay que ir al login.
func (s *Store) RequireUser() (*entity.User, error) {
	if u := s.User(); u != nil {
		return u, nil
	}
	return nil, domain.ErrUnauthorized
}

// Subscribe registra un listener; devuelve la función para darlo de baja.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close da de baja a todos los listeners; los cambios posteriores no se notifican.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = map[int]Listener{}
	s.closed = true
}

func (s *Store) set(state State, user *entity.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	var fns []Listener
	if !s.closed {
		for _, fn := range s.listeners {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		var u *entity.User
		if user != nil {
			cp := *user
			u = &cp
		}
		fn(state, u)
	}
}
