package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalEnvelope(t *testing.T, status string, v any) map[string]any {
	t.Helper()

	result, err := EnvelopeTransformer(nil, status, v)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestEnvelopeSuccess(t *testing.T) {
	out := marshalEnvelope(t, "200", map[string]string{"id": "rev-123"})

	assert.Equal(t, float64(1), out["v"])
	assert.Equal(t, true, out["success"])
	assert.Contains(t, out, "data")
	assert.NotContains(t, out, "error")
	assert.NotContains(t, out, "code")
}

func TestEnvelopeSuccessNilData(t *testing.T) {
	out := marshalEnvelope(t, "204", nil)

	assert.Equal(t, float64(1), out["v"])
	assert.Equal(t, true, out["success"])
	assert.NotContains(t, out, "data")
}

func TestEnvelopeSimpleError(t *testing.T) {
	out := marshalEnvelope(t, "404", &APIError{Message: "Resource not found"})

	assert.Equal(t, float64(1), out["v"])
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Resource not found", out["error"])
	assert.NotContains(t, out, "code")
}

func TestEnvelopeDetailedError(t *testing.T) {
	out := marshalEnvelope(t, "409", &APIError{
		Code:    "ALREADY_EXISTS",
		Message: "Handle already in use",
		Details: map[string]string{"handle": "ursula"},
	})

	assert.Equal(t, false, out["success"])
	assert.Equal(t, "ALREADY_EXISTS", out["code"])
	assert.Equal(t, "Handle already in use", out["message"])
	assert.Contains(t, out, "details")
}

// The version field is named exactly "v". Clients key on it, so a rename
// would break them silently.
func TestEnvelopeVersionFieldName(t *testing.T) {
	out := marshalEnvelope(t, "200", nil)

	assert.Contains(t, out, "v")
	assert.NotContains(t, out, "version")
}
