package service_test

import (
	"context"
	"testing"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv(t *testing.T) (service.AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{JWTSecret: "clave-solo-para-tests", JWTExpirationHours: 8}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "laura", Password: "taller2026", Nombre: "Laura Gomez", Rol: "admin",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "laura", Password: "taller2026"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "laura", resp.Usuario)
	assert.Equal(t, "admin", resp.Rol)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "laura", Password: "taller2026", Nombre: "Laura Gomez", Rol: "admin",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "laura", Password: "equivocada"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales inválidas")

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "taller2026"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales inválidas")
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "laura", Password: "taller2026", Nombre: "Laura Gomez", Rol: "mecanico",
	})
	require.NoError(t, err)
	user.Activo = false
	require.NoError(t, repo.Save(ctx, user))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "laura", Password: "taller2026"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales inválidas")
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "laura", Password: "taller2026", Nombre: "Laura Gomez", Rol: "admin",
	})
	require.NoError(t, err)

	_, err = svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "laura", Password: "otra-clave", Nombre: "Otra Laura", Rol: "mecanico",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}
