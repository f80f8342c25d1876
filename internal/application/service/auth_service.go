package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

// ErrCorruptSession el usuario persistido no se puede decodificar.
var ErrCorruptSession = errors.New("auth: usuario persistido corrupto")

// LoginResult token y usuario de un login exitoso.
type LoginResult struct {
	Token string
	User  entity.User
}

// AuthService login, logout y perfil contra el backend. Es el único que escribe
// las claves token y user del almacenamiento.
type AuthService struct {
	gw    ports.Gateway
	store ports.KeyValueStore
	log   *logger.Logger
}

func NewAuthService(gw ports.Gateway, store ports.KeyValueStore, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{gw: gw, store: store, log: log.Named("auth")}
}

// Login autentica y persiste token y usuario. Si falla no persiste nada.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("credenciales", domain.MsgRequired)
	}

	var resp dto.LoginResponse
	if err := s.gw.Post(ctx, "/gt/login", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		s.log.Info().Str("email", email).Err(err).Msg("login rechazado")
		return nil, err
	}
	if resp.Token == "" {
		return nil, &domain.APIError{Status: http.StatusOK, Msg: MsgTokenMissing, Kind: domain.ErrUnauthorized}
	}

	user := dto.NormalizeUser(resp.UserRecord)
	raw, err := json.Marshal(dto.UserRecordFrom(user))
	if err != nil {
		return nil, fmt.Errorf("auth: serializar usuario: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyToken, resp.Token); err != nil {
		return nil, fmt.Errorf("auth: guardar token: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyUser, string(raw)); err != nil {
		_ = s.store.Delete(ctx, ports.KeyToken)
		return nil, fmt.Errorf("auth: guardar usuario: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("rol", user.Role).Msg("sesión iniciada")
	return &LoginResult{Token: resp.Token, User: user}, nil
}

// Logout borra token y usuario del almacenamiento. No llama al backend.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, ports.KeyToken, ports.KeyUser); err != nil {
		return fmt.Errorf("auth: cerrar sesión: %w", err)
	}
	return nil
}

// Profile consulta el perfil del usuario autenticado. Sin token falla con domain.ErrNoToken.
func (s *AuthService) Profile(ctx context.Context) (*entity.User, error) {
	token, ok, err := s.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("auth: leer token: %w", err)
	}
	if !ok || token == "" {
		return nil, domain.ErrNoToken
	}
	var rec dto.UserRecord
	if err := s.gw.Get(ctx, "/gt/perfil", nil, &rec); err != nil {
		return nil, err
	}
	u := dto.NormalizeUser(rec)
	return &u, nil
}

// StoredSession lee la sesión persistida sin validarla contra el servidor.
// Devuelve user nil si falta cualquiera de las dos claves.
func (s *AuthService) StoredSession(ctx context.Context) (string, *entity.User, error) {
	token, okToken, err := s.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return "", nil, fmt.Errorf("auth: leer token: %w", err)
	}
	raw, okUser, err := s.store.Get(ctx, ports.KeyUser)
	if err != nil {
		return "", nil, fmt.Errorf("auth: leer usuario: %w", err)
	}
	if !okToken || !okUser || token == "" {
		return "", nil, nil
	}
	var rec dto.UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}
	u := dto.NormalizeUser(rec)
	return token, &u, nil
}
