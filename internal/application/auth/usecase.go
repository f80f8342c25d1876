package auth

import (
	"strings"

	"github.com/jhoicas/bodega-app/internal/application/dto"
	"github.com/jhoicas/bodega-app/internal/domain"
	"github.com/jhoicas/bodega-app/internal/domain/entity"
	"github.com/jhoicas/bodega-app/internal/domain/repository"
	"github.com/jhoicas/bodega-app/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Mensajes devueltos en {msg}.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgUserNotFound       = "Usuario no encontrado"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación del sandbox: login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario al mismo nivel.
// Email inexistente y contraseña incorrecta responden igual.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, invalidCredentials()
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:      token,
		UserRecord: dto.UserRecordFrom(*user),
	}, nil
}

// Profile datos públicos del usuario autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.UserRecord, error) {
	user, err := uc.User(userID)
	if err != nil {
		return nil, err
	}
	rec := dto.UserRecordFrom(*user)
	return &rec, nil
}

// User usuario completo por id; lo usan los handlers que necesitan el nombre del responsable.
func (uc *AuthUseCase) User(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.ValidationError{Field: "usuario", Msg: MsgUserNotFound, Kind: domain.ErrNotFound}
	}
	return user, nil
}

// HashPassword hash bcrypt para sembrar usuarios.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func invalidCredentials() error {
	return &domain.ValidationError{Field: "credenciales", Msg: MsgInvalidCredentials, Kind: domain.ErrUnauthorized}
}
