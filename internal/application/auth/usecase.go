package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cmi-stock/internal/application/dto"
	"github.com/jhoicas/cmi-stock/internal/domain"
	"github.com/jhoicas/cmi-stock/internal/domain/entity"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/pkg/jwt"
	"github.com/jhoicas/cmi-stock/pkg/validator"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra los usuarios configurados. La puerta de autenticación corre antes
// que cualquier lectura del motor.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{Username: u.Username, Role: u.Role}
}
