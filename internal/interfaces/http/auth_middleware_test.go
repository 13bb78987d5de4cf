package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "stock-ledger-test"
	testExpMin    = 60
)

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// withHeader envía la petición con el Authorization tal cual, sin pasar por tokenForRole.
func withHeader(t *testing.T, app *fiber.App, method, path, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestRutasAdmin_MatrizDeRoles(t *testing.T) {
	app := buildAPI(t)
	nuevo := map[string]string{"email": "nuevo@bodega.co", "password": "secreto123", "role": "comprador"}

	cases := []struct {
		name   string
		path   string
		role   string
		body   interface{}
		status int
	}{
		{"reset bodeguero", "/api/inventory/reset", "bodeguero", nil, http.StatusForbidden},
		{"reset comprador", "/api/inventory/reset", "comprador", nil, http.StatusForbidden},
		{"reset admin", "/api/inventory/reset", "admin", nil, http.StatusNoContent},
		{"reset admin en mayúsculas", "/api/inventory/reset", "ADMIN", nil, http.StatusNoContent},
		{"registro bodeguero", "/api/auth/register", "bodeguero", nuevo, http.StatusForbidden},
		{"registro comprador", "/api/auth/register", "comprador", nuevo, http.StatusForbidden},
		{"registro admin", "/api/auth/register", "admin", nuevo, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, tc.path, tc.role, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRutasOperativas_CualquierRol(t *testing.T) {
	app := buildAPI(t)
	for _, role := range []string{"admin", "bodeguero", "comprador"} {
		resp := call(t, app, http.MethodGet, "/api/inventory/balances", role, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)

		resp = call(t, app, http.MethodGet, "/api/replenishment/list", role, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)
	}
}

func TestReset_TokenSinRol401(t *testing.T) {
	app := buildAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := withHeader(t, app, http.MethodPost, "/api/inventory/reset", "Bearer "+tok, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp))
}

func TestAuthMiddleware_TokensRechazados(t *testing.T) {
	app := buildAPI(t)
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)
	otraClave, err := pkgjwt.Generate("otra-clave", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Token " + otraClave, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expirado, "INVALID_TOKEN"},
		{"firma incorrecta", "Bearer " + otraClave, "INVALID_TOKEN"},
		{"basura", "Bearer no.es.jwt", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := withHeader(t, app, http.MethodPost, "/api/inventory/reset", tc.header, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	app := buildAPI(t)
	tok := strings.TrimPrefix(tokenForRole(t, "bodeguero"), "Bearer ")

	resp := withHeader(t, app, http.MethodGet, "/api/inventory/balances", "bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
