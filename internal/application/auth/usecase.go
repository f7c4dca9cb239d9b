package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro, login y perfil propio.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol vendedor por defecto. Las credenciales se
// validan antes de tocar la DB; el hash es bcrypt con costo por defecto.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if in.Password != in.ConfirmPassword {
		return nil, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}
	if existing, _ := uc.users.GetByUsername(in.Username); existing != nil {
		return nil, fmt.Errorf("username %s: %w", in.Username, domain.ErrDuplicate)
	}
	if existing, _ := uc.users.GetByEmail(in.Email); existing != nil {
		return nil, fmt.Errorf("email %s: %w", in.Email, domain.ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	nickname := in.Nickname
	if nickname == "" {
		nickname = in.Username
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Nickname:     nickname,
		Email:        in.Email,
		Role:         entity.RoleVendedor,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// Login verifica username/password, registra el último login y emite el JWT.
// Credenciales incorrectas y usuario inexistente devuelven el mismo error
// para no revelar qué usuarios existen.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	if err := uc.users.TouchLastLogin(user.ID); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserFromEntity(user),
	}, nil
}

// UpdateProfile edita el perfil del usuario autenticado. Solo nickname, email
// y avatar; rol y estado solo los cambia un admin vía /users.
func (uc *UseCase) UpdateProfile(userID int64, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", userID, domain.ErrNotFound)
	}
	if in.Email != "" && in.Email != user.Email {
		if existing, _ := uc.users.GetByEmail(in.Email); existing != nil {
			return nil, fmt.Errorf("email %s: %w", in.Email, domain.ErrDuplicate)
		}
		user.Email = in.Email
	}
	if in.Nickname != "" {
		user.Nickname = in.Nickname
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// ChangePassword cambia la contraseña del usuario autenticado verificando la
// contraseña actual.
func (uc *UseCase) ChangePassword(userID int64, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 6 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if in.NewPassword != in.ConfirmPassword {
		return fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", userID, domain.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: la contraseña actual no es correcta", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.users.Update(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", userID, domain.ErrNotFound)
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}
