//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/config"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("medinautos_test"),
		tcPostgres.WithUsername("medinautos"),
		tcPostgres.WithPassword("medinautos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		TallerNombre:       "MedinAutos E2E",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("medinautos2026"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		Nombre:       "Admin E2E",
		PasswordHash: string(hash),
		Rol:          "admin",
		Activo:       true,
	}).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "medinautos2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token}
}

type created struct {
	ID string `json:"id"`
}

func (e *testEnv) post(t *testing.T, path string, body map[string]any) created {
	t.Helper()
	resp := do(t, e.server, "POST", path, jsonBody(t, body), e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "POST %s", path)
	var out created
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.ID)
	return out
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full cycle: catalogo → caja → orden → cierre → liquidacion → reapertura.
func TestE2E_CicloOrdenCompleto(t *testing.T) {
	env := setupTestEnv(t)

	cliente := env.post(t, "/v1/clientes", map[string]any{
		"nombre": "Carlos Medina", "documento": "1032456789",
	})
	vehiculo := env.post(t, "/v1/vehiculos", map[string]any{
		"placa": "JKM482", "marca": "Mazda", "modelo": "3 Touring",
		"cliente_id": cliente.ID, "km_actual": 45000,
	})
	servicio := env.post(t, "/v1/servicios", map[string]any{
		"nombre": "Cambio de aceite y filtros", "precio": 200000,
	})
	mecanico := env.post(t, "/v1/mecanicos", map[string]any{
		"nombres": "Pedro", "apellidos": "Rojas", "documento": "79456123",
		"porcentaje_base": 20,
	})

	cajaResp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"saldo_inicial": 100000}), env.token)
	require.Equal(t, http.StatusCreated, cajaResp.StatusCode)
	var caja created
	decodeJSON(t, cajaResp, &caja)

	orden := env.post(t, "/v1/ordenes", map[string]any{
		"cliente_id": cliente.ID, "vehiculo_id": vehiculo.ID,
		"descripcion": "Mantenimiento preventivo 45mil km",
	})
	env.post(t, "/v1/ordenes/"+orden.ID+"/servicios", map[string]any{
		"servicio_id": servicio.ID, "cantidad": 1,
	})
	env.post(t, "/v1/ordenes/"+orden.ID+"/mecanicos", map[string]any{
		"mecanico_id": mecanico.ID,
	})

	// Close: settlement posts income and provisions in one transaction.
	cerrarResp := do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]any{"estado": "cerrada"}), env.token)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	var cerrada struct {
		Estado string `json:"Estado"`
	}
	decodeJSON(t, cerrarResp, &cerrada)
	assert.Equal(t, "cerrada", cerrada.Estado)

	resumenResp := do(t, env.server, "GET", "/v1/caja/"+caja.ID+"/resumen", nil, env.token)
	require.Equal(t, http.StatusOK, resumenResp.StatusCode)
	var resumen struct {
		TotalIngresos json.Number `json:"total_ingresos"`
		TotalEgresos  json.Number `json:"total_egresos"`
		SaldoFinal    json.Number `json:"saldo_final"`
	}
	decodeJSON(t, resumenResp, &resumen)
	assert.Equal(t, "260000", string(resumen.SaldoFinal))
	assert.Equal(t, "200000", string(resumen.TotalIngresos))
	assert.Equal(t, "40000", string(resumen.TotalEgresos))

	// One pending settlement for the assigned mechanic.
	liqResp := do(t, env.server, "GET", "/v1/liquidaciones", nil, env.token)
	require.Equal(t, http.StatusOK, liqResp.StatusCode)
	var liquidaciones []struct {
		ID     string `json:"ID"`
		Estado string `json:"Estado"`
	}
	decodeJSON(t, liqResp, &liquidaciones)
	require.Len(t, liquidaciones, 1)
	assert.Equal(t, "pendiente", liquidaciones[0].Estado)

	// Reopen reverses the postings and the balance returns to the start.
	reabrirResp := do(t, env.server, "POST", "/v1/ordenes/"+orden.ID+"/reabrir",
		jsonBody(t, map[string]any{"motivo": "quedo goteando aceite"}), env.token)
	require.Equal(t, http.StatusOK, reabrirResp.StatusCode)

	resumenResp = do(t, env.server, "GET", "/v1/caja/"+caja.ID+"/resumen", nil, env.token)
	require.Equal(t, http.StatusOK, resumenResp.StatusCode)
	decodeJSON(t, resumenResp, &resumen)
	assert.Equal(t, "100000", string(resumen.SaldoFinal))
}

// A second open register is rejected while one is already open.
func TestE2E_CajaUnicaAbierta(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"saldo_inicial": 50000}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"saldo_inicial": 10000}), env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// Protected routes reject requests without a token.
func TestE2E_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/ordenes", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// Maintenance rules evaluate against a vehicle and surface in taller alerts.
func TestE2E_MantenimientoAlertas(t *testing.T) {
	env := setupTestEnv(t)

	cliente := env.post(t, "/v1/clientes", map[string]any{
		"nombre": "Ana Torres", "documento": "52123456",
	})
	vehiculo := env.post(t, "/v1/vehiculos", map[string]any{
		"placa": "XWZ903", "marca": "Renault", "modelo": "Duster",
		"cliente_id": cliente.ID, "km_actual": 38000,
	})
	env.post(t, "/v1/mantenimiento/reglas", map[string]any{
		"nombre": "Cambio de aceite", "intervalo_km": 5000,
	})

	// First evaluation plants the baseline at 38000.
	evalResp := do(t, env.server, "GET", "/v1/vehiculos/"+vehiculo.ID+"/mantenimiento", nil, env.token)
	require.Equal(t, http.StatusOK, evalResp.StatusCode)
	var estados []struct {
		Estado   string `json:"estado"`
		Progreso int    `json:"progreso"`
	}
	decodeJSON(t, evalResp, &estados)
	require.Len(t, estados, 1)
	assert.Equal(t, "ok", estados[0].Estado)

	// Push the odometer past the interval.
	kmResp := do(t, env.server, "PATCH", "/v1/vehiculos/"+vehiculo.ID+"/km",
		jsonBody(t, map[string]any{"km_actual": 43500}), env.token)
	require.Equal(t, http.StatusOK, kmResp.StatusCode)
	kmResp.Body.Close()

	alertasResp := do(t, env.server, "GET", "/v1/mantenimiento/alertas", nil, env.token)
	require.Equal(t, http.StatusOK, alertasResp.StatusCode)
	var alertas []struct {
		Placa    string `json:"placa"`
		Vencidos []struct {
			Nombre string `json:"nombre"`
		} `json:"vencidos"`
	}
	decodeJSON(t, alertasResp, &alertas)
	require.Len(t, alertas, 1)
	assert.Equal(t, "XWZ903", alertas[0].Placa)
	require.Len(t, alertas[0].Vencidos, 1)
	assert.Equal(t, "Cambio de aceite", alertas[0].Vencidos[0].Nombre)
}
