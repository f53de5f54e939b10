package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/andresjj98/appagencia-api/internal/interfaces/http"
	pkgjwt "github.com/andresjj98/appagencia-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOfficeID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "appagencia-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con el AuthMiddleware y
// un handler que expone la identidad reconstruida desde los locals.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		u := apphttp.GetIdentity(c)
		if u == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		officeID := ""
		if u.OfficeID != nil {
			officeID = *u.OfficeID
		}
		return c.JSON(fiber.Map{
			"user_id":     u.ID,
			"role":        u.Role,
			"office_id":   officeID,
			"super_admin": u.IsSuperAdmin,
		})
	})
	return app
}

// tokenFor genera un JWT firmado con la identidad indicada.
func tokenFor(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /me y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → 200 y la identidad completa queda en los locals.
func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := buildTestApp()
	office := testOfficeID
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Identity{
		UserID:   testUserID,
		Role:     "asesor",
		OfficeID: &office,
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "asesor", body["role"])
	assert.Equal(t, testOfficeID, body["office_id"])
	assert.Equal(t, false, body["super_admin"])
}

// Caso 1b: el flag de superadmin y la ausencia de oficina también viajan en
// los claims.
func TestAuthMiddleware_SuperAdminSinOficina(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Identity{
		UserID:     testUserID,
		Role:       "administrador",
		SuperAdmin: true,
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["super_admin"])
	assert.Equal(t, "", body["office_id"], "sin oficina en el token la identidad queda sin restricción")
}

// Caso 2: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 3: header sin esquema Bearer → 401 INVALID_TOKEN.
func TestAuthMiddleware_EsquemaInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 4: token malformado → 401.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token firmado con otro secret → 401.
func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto",
		pkgjwt.Identity{UserID: testUserID, Role: "asesor"}, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_RoundTrip(t *testing.T) {
	office := testOfficeID
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID:     testUserID,
		Role:       "gestor",
		OfficeID:   &office,
		SuperAdmin: false,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, id.UserID)
	assert.Equal(t, "gestor", id.Role)
	require.NotNil(t, id.OfficeID)
	assert.Equal(t, testOfficeID, *id.OfficeID)
	assert.False(t, id.SuperAdmin)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Role: "asesor"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: testUserID}, testIssuer, testExpMin)
	assert.Error(t, err)
}
