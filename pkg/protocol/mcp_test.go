package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializeRequest(t *testing.T) {
	req, err := NewInitializeRequest(1, ClientInfo{Name: "t", Version: "1"})
	require.NoError(t, err)

	assert.Equal(t, MethodInitialize, req.Method)

	var params InitializeParams
	require.NoError(t, json.Unmarshal(req.Params, &params))
	assert.Equal(t, ProtocolVersion, params.ProtocolVersion)
	assert.Equal(t, "t", params.ClientInfo.Name)
	assert.NotNil(t, params.Capabilities, "capabilities must serialize as {}, not null")
}

func TestCapabilityListDecoding(t *testing.T) {
	raw := `{
		"tools": [
			{"name": "POST__tools_find", "description": "Search genes", "inputSchema": {"type": "object", "properties": {"query": {"type": "string"}}}}
		]
	}`
	var result ListToolsResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "POST__tools_find", result.Tools[0].Name)
	assert.NotEmpty(t, result.Tools[0].InputSchema)
}

func TestResourceDecoding(t *testing.T) {
	raw := `{"resources": [{"uri": "hgnc://genes", "name": "genes", "mimeType": "application/json"}]}`
	var result ListResourcesResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	require.Len(t, result.Resources, 1)
	assert.Equal(t, "hgnc://genes", result.Resources[0].URI)
	assert.Equal(t, "application/json", result.Resources[0].MimeType)
}
