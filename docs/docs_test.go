package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	paths := parsed["paths"].(map[string]any)
	for _, p := range []string{
		"/api/customers",
		"/api/customers/{customerID}",
		"/api/customers/{customerID}/addresses",
		"/api/customers/{customerID}/transactions",
		"/api/addresses/{addressID}",
	} {
		assert.Contains(t, paths, p)
	}
	assert.Equal(t, "Customer Registry API", parsed["info"].(map[string]any)["title"])

	listAddresses := paths["/api/customers/{customerID}/addresses"].(map[string]any)["get"].(map[string]any)
	assert.Contains(t, listAddresses["description"], "customer_not_found")
	assert.Contains(t, listAddresses["responses"], "404")
}
