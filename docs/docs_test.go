package docs_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/Impuestos-api/docs"
)

type swaggerDoc struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Paths               map[string]map[string]json.RawMessage `json:"paths"`
	Definitions         map[string]json.RawMessage            `json:"definitions"`
	SecurityDefinitions map[string]json.RawMessage            `json:"securityDefinitions"`
}

func TestDocRegistrado_CoincideConSwaggerJSON(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err, "el documento debe estar registrado")

	var registered swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &registered), "la plantilla debe producir JSON válido")

	file, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var served swaggerDoc
	require.NoError(t, json.Unmarshal(file, &served))

	assert.Equal(t, "Impuestos API", registered.Info.Title)
	assert.Equal(t, served.Info.Title, registered.Info.Title)
	assert.Len(t, registered.Paths, len(served.Paths))
	for path, ops := range served.Paths {
		require.Contains(t, registered.Paths, path)
		for method, op := range ops {
			assert.JSONEq(t, string(op), string(registered.Paths[path][method]), "%s %s", method, path)
		}
	}
	assert.Len(t, registered.Definitions, len(served.Definitions))
	assert.Contains(t, registered.SecurityDefinitions, "Bearer")
}

func TestSwaggerJSON_RutasProtegidas(t *testing.T) {
	file, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var served swaggerDoc
	require.NoError(t, json.Unmarshal(file, &served))

	expected := map[string]string{
		"/api/taxes/calculate":               "post",
		"/api/taxpayers/{id}/classification": "get",
		"/api/rules/{taxType}":               "get",
	}
	for path, method := range expected {
		require.Contains(t, served.Paths, path)
		var op struct {
			Security  []map[string][]string `json:"security"`
			Responses map[string]any        `json:"responses"`
		}
		require.NoError(t, json.Unmarshal(served.Paths[path][method], &op))
		require.Len(t, op.Security, 1, path)
		assert.Contains(t, op.Security[0], "Bearer", path)
		assert.Contains(t, op.Responses, "401", path)
		assert.Contains(t, op.Responses, "403", path)
	}
}
