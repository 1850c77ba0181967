package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Bodega-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-pruebas"
	testIssuer    = "bodega-api-test"
)

// buildTestApp monta rutas mínimas detrás del middleware de auth: una
// protegida para cualquier operador y otra solo para administradores.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", httpiface.AuthMiddleware(testJWTSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		op := httpiface.GetOperator(c)
		return c.JSON(fiber.Map{
			"user_id":     op.ID,
			"employee_id": op.EmployeeID,
			"name":        op.Name,
			"is_admin":    op.IsAdmin,
		})
	})
	protected.Post("/admin-only", httpiface.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, "user-1", "1001", "Operador Prueba", isAdmin, testIssuer, 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Es401(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, fiber.MethodGet, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoRoto_Es401(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"Basic abc", "Bearer", "solo-token"} {
		status, _ := doRequest(t, app, fiber.MethodGet, "/me", header)
		assert.Equal(t, fiber.StatusUnauthorized, status, "header %q debe rechazarse", header)
	}
}

func TestAuthMiddleware_TokenInvalido_Es401(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, fiber.MethodGet, "/me", "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenValido_ExponeOperador(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, fiber.MethodGet, "/me", "Bearer "+tokenFor(t, true))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "1001", body["employee_id"])
	assert.Equal(t, "Operador Prueba", body["name"])
	assert.Equal(t, true, body["is_admin"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminPasa(t *testing.T) {
	app := buildTestApp()
	status, _ := doRequest(t, app, fiber.MethodPost, "/admin-only", "Bearer "+tokenFor(t, true))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireAdmin_OperadorComun_Es403(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, fiber.MethodPost, "/admin-only", "Bearer "+tokenFor(t, false))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt — ida y vuelta de claims
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParse_RoundTrip(t *testing.T) {
	token, err := pkgjwt.Generate(testJWTSecret, "user-9", "2002", "Ana", true, testIssuer, 30)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, "2002", claims.EmployeeID)
	assert.Equal(t, "Ana", claims.Name)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_Expirado_EsError(t *testing.T) {
	token, err := pkgjwt.Generate(testJWTSecret, "user-9", "2002", "Ana", false, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, token)
	assert.Error(t, err)
}

func TestJWT_SecretIncorrecto_EsError(t *testing.T) {
	token, err := pkgjwt.Generate(testJWTSecret, "user-9", "2002", "Ana", false, testIssuer, 30)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}
