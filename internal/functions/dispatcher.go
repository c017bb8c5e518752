// Package functions dispatches named function invocations to registered
// server-side handlers.
package functions

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/metrics"
	"jari-backend/internal/common/validation"
)

// Invocation is a function-call request as embedded in the webhook body.
type Invocation struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Handler executes one named function. ParameterSchema is enforced against
// the invocation parameters before Execute runs; it is the same schema the
// assistant manifest advertises.
type Handler interface {
	Name() string
	ParameterSchema() validation.JSONSchema
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// Dispatcher routes invocations by function name.
type Dispatcher struct {
	handlers map[string]Handler
	logger   logger.Logger
}

func NewDispatcher(log logger.Logger, handlers ...Handler) *Dispatcher {
	registry := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		registry[h.Name()] = h
	}
	return &Dispatcher{
		handlers: registry,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Dispatch validates and executes the invocation. Unknown names and missing
// arguments surface as client errors, never as crashes.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) (interface{}, error) {
	log := d.logger.WithFields(map[string]interface{}{"function": inv.Name})
	log.Info("dispatching function call", map[string]interface{}{
		"parameters": inv.Parameters,
	})

	handler, ok := d.handlers[inv.Name]
	if !ok {
		log.Warn("unknown function name", nil)
		metrics.FunctionInvocations.WithLabelValues(inv.Name, "unknown_function").Inc()
		return nil, errors.NewUnknownFunctionError(inv.Name)
	}

	params := inv.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}

	result, err := validation.ValidateInput(params, handler.ParameterSchema())
	if err != nil {
		metrics.FunctionInvocations.WithLabelValues(inv.Name, "error").Inc()
		return nil, errors.NewInvalidRequestError(err.Error())
	}
	if !result.Valid {
		field := result.Errors[0].Field
		log.Warn("invalid function parameters", map[string]interface{}{
			"field":  field,
			"detail": result.Errors[0].Message,
		})
		metrics.FunctionInvocations.WithLabelValues(inv.Name, "missing_argument").Inc()
		return nil, errors.NewMissingArgumentError(field, fmt.Sprintf("%s not provided", humanizeField(field)))
	}

	out, err := handler.Execute(ctx, params)
	if err != nil {
		metrics.FunctionInvocations.WithLabelValues(inv.Name, "error").Inc()
		return nil, err
	}

	metrics.FunctionInvocations.WithLabelValues(inv.Name, "success").Inc()
	return out, nil
}

// humanizeField turns a camelCase parameter name into a sentence opener,
// e.g. "fullName" -> "Full name".
func humanizeField(field string) string {
	if field == "" {
		return "Argument"
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
