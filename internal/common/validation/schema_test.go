package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"fullName"},
		Properties: map[string]Property{
			"fullName": {Type: "string", MinLength: intPtr(1)},
		},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"fullName": "Jane Scotson"}, testSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{"missing required field", map[string]interface{}{}},
		{"empty string violates minLength", map[string]interface{}{"fullName": ""}},
		{"wrong type", map[string]interface{}{"fullName": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput(tt.input, testSchema())
			require.NoError(t, err)
			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, "fullName", result.Errors[0].Field)
		})
	}
}

func TestValidateInput_Enum(t *testing.T) {
	schema := JSONSchema{
		Type:     "object",
		Required: []string{"destination"},
		Properties: map[string]Property{
			"destination": {Type: "string", Enum: []string{"+358468422410"}},
		},
	}

	result, err := ValidateInput(map[string]interface{}{"destination": "+358468422410"}, schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateInput(map[string]interface{}{"destination": "+100"}, schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
