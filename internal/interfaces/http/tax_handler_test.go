package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Impuestos-api/internal/application/dto"
	"github.com/jhoicas/Impuestos-api/internal/application/taxcalc"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/csvloader"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Impuestos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Impuestos-api/pkg/jwt"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
)

// buildAPI arma el router completo sobre el CSV de fixtures y el catálogo incorporado.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store, err := memory.LoadTaxpayerStore(context.Background(),
		csvloader.NewTaxpayerLoader("../../../testdata/tax-info.csv", csvloader.EncodingUTF8, logger.Nop()))
	require.NoError(t, err)
	rules, err := tax.BuiltinRules()
	require.NoError(t, err)
	reg, err := tax.NewRegistry(rules...)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CalculateTaxes: taxcalc.NewCalculateOrderTaxesUseCase(store, reg, nil),
		Lookup:         taxcalc.NewLookupUseCase(store, reg),
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func calcRequest(orderDate string, items ...map[string]any) map[string]any {
	return map[string]any{
		"order_id":         "ped-1",
		"order_date":       orderDate,
		"calculation_date": "2025-11-10T12:00:00Z",
		"items":            items,
	}
}

func line(value, taxpayerID string) map[string]any {
	return map[string]any{"category": "XPTO", "value": value, "taxpayer_id": taxpayerID}
}

func findAmount(taxes []dto.TaxAmountResponse, taxType string) (decimal.Decimal, bool) {
	for _, tx := range taxes {
		if tx.TaxType == taxType {
			return tx.Amount, true
		}
	}
	return decimal.Zero, false
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/taxes/calculate
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_PedidoConVariosItems(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleOperator,
		calcRequest("2025-06-15", line("1000", "actor-2"), line("500", "actor-1"), line("3000", "actor-2")))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.OrderTaxResponse](t, resp)
	assert.Equal(t, "ped-1", out.OrderID)
	assert.Equal(t, "2025-06-15", out.OrderDate)
	require.Len(t, out.Items, 3)

	pcc, ok := findAmount(out.Items[0].Taxes, "PCC")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(70).Equal(pcc))

	iss, ok := findAmount(out.Items[1].Taxes, "ISS")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(30).Equal(iss))

	total, ok := findAmount(out.Totals, "PCC")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(280).Equal(total), "70 + 210")
	assert.Equal(t, "ISS", out.Totals[0].TaxType, "totales en orden de declaración")
}

func TestCalculate_GeneraOrderID(t *testing.T) {
	app := buildAPI(t)
	body := calcRequest("2025-06-15", line("1000", "actor-2"))
	delete(body, "order_id")
	resp := doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleAdmin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.OrderTaxResponse](t, resp)
	assert.Len(t, out.OrderID, 36, "se genera un UUID")
}

func TestCalculate_ClasificacionFaltante_Retorna422(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleOperator,
		calcRequest("2025-06-15", line("1000", "actor-1"), line("1000", "actor-99")))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CLASSIFICATION_NOT_FOUND", out.Code)
	assert.Contains(t, out.Message, "actor-99")
}

func TestCalculate_EntradaInvalida_Retorna400(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleOperator,
		calcRequest("15/06/2025", line("1000", "actor-2")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "fecha con formato inválido")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleOperator,
		calcRequest("2025-06-15", line("1000", "")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "ítem sin contribuyente")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/taxes/calculate", pkgjwt.RoleOperator,
		calcRequest("2025-06-15", line("-1", "actor-2")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "valor negativo")
	resp.Body.Close()
}

func TestCalculate_SinToken_Retorna401(t *testing.T) {
	resp := doJSON(t, buildAPI(t), http.MethodPost, "/api/taxes/calculate", "", calcRequest("2025-06-15"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestClassification_CambioDeRegimen(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/api/taxpayers/actor-4/classification?valid_at=2025-06-15&known_at=2025-11-10T12:00:00Z", pkgjwt.RoleAuditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	june := decode[dto.ClassificationResponse](t, resp)
	assert.Equal(t, "LUCRO_REAL", june.Regime)
	require.NotNil(t, june.ValidUntil)
	assert.Equal(t, "2025-06-30", *june.ValidUntil)

	resp = doJSON(t, app, http.MethodGet, "/api/taxpayers/actor-4/classification?valid_at=2025-08-15&known_at=2025-11-10T12:00:00Z", pkgjwt.RoleAuditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	aug := decode[dto.ClassificationResponse](t, resp)
	assert.Equal(t, "SIMPLES_NACIONAL", aug.Regime)
	assert.Nil(t, aug.ValidUntil)
	assert.Equal(t, "CNPJ", aug.DocumentType)
}

func TestClassification_NoEncontrada_Retorna404(t *testing.T) {
	resp := doJSON(t, buildAPI(t), http.MethodGet, "/api/taxpayers/actor-99/classification?valid_at=2025-06-15", pkgjwt.RoleAdmin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClassification_OperadorBloqueado(t *testing.T) {
	resp := doJSON(t, buildAPI(t), http.MethodGet, "/api/taxpayers/actor-1/classification", pkgjwt.RoleOperator, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRule_VersionVigente(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/api/rules/pcc?valid_at=2025-06-15&known_at=2025-11-10T12:00:00Z", pkgjwt.RoleAuditor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.RuleResponse](t, resp)
	assert.Equal(t, "pcc-2025", out.ID)
	assert.Equal(t, []string{"PIS", "COFINS", "CSLL"}, out.Components)
	assert.True(t, decimal.RequireFromString("10").Equal(out.Threshold))
	assert.Equal(t, "2025-01-01", out.ValidFrom)

	resp = doJSON(t, app, http.MethodGet, "/api/rules/PIS?valid_at=2024-06-15", pkgjwt.RoleAuditor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "sin versión en 2024")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/rules/IVA", pkgjwt.RoleAuditor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/rules/PIS?known_at=ayer", pkgjwt.RoleAuditor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
