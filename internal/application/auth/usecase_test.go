package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(id int64) error { return nil }

func (r *fakeUserRepo) Delete(id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

func buildAuthUseCase(repo *fakeUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "ventas-api-test",
	})
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Nickname:     username,
		Email:        username + "@test.example",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, repo.Create(u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaVendedorPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo)

	out, err := uc.Register(dto.RegisterRequest{
		Username:        "ana",
		Password:        "secreta1",
		ConfirmPassword: "secreta1",
		Email:           "ana@test.example",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.Role)
	assert.Equal(t, entity.UserStatusActive, out.Status)
	// Nickname por defecto = username
	assert.Equal(t, "ana", out.Nickname)
}

func TestRegister_ContrasenasNoCoinciden(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo())
	_, err := uc.Register(dto.RegisterRequest{
		Username:        "ana",
		Password:        "secreta1",
		ConfirmPassword: "otra",
		Email:           "ana@test.example",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "secreta1", entity.RoleVendedor, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	_, err := uc.Register(dto.RegisterRequest{
		Username:        "ana",
		Password:        "secreta1",
		ConfirmPassword: "secreta1",
		Email:           "otra@test.example",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "secreta1", entity.RoleAdmin, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	out, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana", out.User.Username)
}

// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func TestLogin_ErrorUniformeAnteCredencialesMalas(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "secreta1", entity.RoleAdmin, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	_, errNoUser := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	_, errBadPass := uc.Login(dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "secreta1", entity.RoleVendedor, entity.UserStatusInactive)
	uc := buildAuthUseCase(repo)

	_, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_Correcto(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "ana", "secreta1", entity.RoleVendedor, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	err := uc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreta1",
		NewPassword:     "nueva-clave",
		ConfirmPassword: "nueva-clave",
	})
	require.NoError(t, err)

	// La anterior deja de funcionar, la nueva sí.
	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "nueva-clave"})
	assert.NoError(t, err)
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "ana", "secreta1", entity.RoleVendedor, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	err := uc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "mala",
		NewPassword:     "nueva-clave",
		ConfirmPassword: "nueva-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_NuevaMuyCorta(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "ana", "secreta1", entity.RoleVendedor, entity.UserStatusActive)
	uc := buildAuthUseCase(repo)

	err := uc.ChangePassword(u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreta1",
		NewPassword:     "corta",
		ConfirmPassword: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
