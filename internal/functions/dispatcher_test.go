package functions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/validation"
)

// ==========================
// Test Helper Functions
// ==========================

type stubHandler struct {
	name   string
	result interface{}
	err    error
	calls  int
}

func (s *stubHandler) Name() string { return s.name }

func (s *stubHandler) ParameterSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"fullName"},
		Properties: map[string]validation.Property{
			"fullName": {Type: "string", MinLength: intPtr(1)},
		},
	}
}

func (s *stubHandler) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	s.calls++
	return s.result, s.err
}

func intPtr(i int) *int { return &i }

func newTestDispatcher(t *testing.T, handlers ...Handler) *Dispatcher {
	return NewDispatcher(logger.NewTestLogger(t), handlers...)
}

// ==========================
// Dispatch Tests
// ==========================

func TestDispatch_Success(t *testing.T) {
	handler := &stubHandler{name: "check_availability", result: map[string]bool{"found": true}}
	dispatcher := newTestDispatcher(t, handler)

	result, err := dispatcher.Dispatch(context.Background(), Invocation{
		Name:       "check_availability",
		Parameters: map[string]interface{}{"fullName": "Jane Scotson"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"found": true}, result)
	assert.Equal(t, 1, handler.calls)
}

func TestDispatch_UnknownFunction(t *testing.T) {
	handler := &stubHandler{name: "check_availability"}
	dispatcher := newTestDispatcher(t, handler)

	result, err := dispatcher.Dispatch(context.Background(), Invocation{Name: "foo"})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownFunction))
	assert.Equal(t, "Unknown function: foo", err.(*errors.StandardError).Message)
	assert.Equal(t, 0, handler.calls)
}

func TestDispatch_MissingArgument(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"nil parameters", nil},
		{"empty parameters", map[string]interface{}{}},
		{"empty string", map[string]interface{}{"fullName": ""}},
		{"wrong type", map[string]interface{}{"fullName": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &stubHandler{name: "check_availability"}
			dispatcher := newTestDispatcher(t, handler)

			result, err := dispatcher.Dispatch(context.Background(), Invocation{
				Name:       "check_availability",
				Parameters: tt.params,
			})
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMissingArgument))
			assert.Equal(t, "Full name not provided", err.(*errors.StandardError).Message)
			assert.Equal(t, 0, handler.calls)
		})
	}
}

func TestDispatch_HandlerErrorPassesThrough(t *testing.T) {
	handler := &stubHandler{
		name: "check_availability",
		err:  errors.NewDirectoryUpstreamError("down"),
	}
	dispatcher := newTestDispatcher(t, handler)

	result, err := dispatcher.Dispatch(context.Background(), Invocation{
		Name:       "check_availability",
		Parameters: map[string]interface{}{"fullName": "Jane Scotson"},
	})
	assert.Nil(t, result)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDirectoryUpstreamFailed))
}

// ==========================
// Helper Tests
// ==========================

func TestHumanizeField(t *testing.T) {
	tests := []struct {
		field    string
		expected string
	}{
		{"fullName", "Full name"},
		{"destination", "Destination"},
		{"concernId", "Concern id"},
		{"", "Argument"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, humanizeField(tt.field))
	}
}
