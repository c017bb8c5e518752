// Package http is the webhook gate: it authenticates inbound platform
// callbacks and routes them by message type.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"jari-backend/internal/assistant"
	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/metrics"
	"jari-backend/internal/common/observability"
	"jari-backend/internal/functions"
)

// Message types the voice platform sends.
const (
	MessageTypeAssistantRequest = "assistant-request"
	MessageTypeFunctionCall     = "function-call"
)

// WebhookEnvelope is the inbound request body shape.
type WebhookEnvelope struct {
	Message struct {
		Type         string               `json:"type"`
		FunctionCall functions.Invocation `json:"functionCall"`
	} `json:"message"`
}

type Handler struct {
	manifest   *assistant.Manifest
	dispatcher *functions.Dispatcher
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(manifest *assistant.Manifest, dispatcher *functions.Dispatcher, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		manifest:   manifest,
		dispatcher: dispatcher,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"component": "webhook"}),
	}
}

// HandleCall answers POST /handle_call. Every code path yields a well-formed
// JSON response; no fault escapes to the transport layer.
func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.logger.WithFields(map[string]interface{}{
		"requestId": GetRequestID(r.Context()),
	})

	var envelope WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		log.Warn("malformed webhook body", map[string]interface{}{"error": err.Error()})
		metrics.WebhookRequests.WithLabelValues("unknown", "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	messageType := envelope.Message.Type
	log.Info("webhook request received", map[string]interface{}{
		"messageType": messageType,
	})
	defer func() {
		h.obs.RecordRequestDuration(r.Context(), time.Since(start), messageType)
	}()

	switch messageType {
	case MessageTypeAssistantRequest:
		metrics.WebhookRequests.WithLabelValues(messageType, "success").Inc()
		h.obs.RecordRequest(r.Context(), messageType, "success")
		writeJSON(w, http.StatusOK, h.manifest)

	case MessageTypeFunctionCall:
		h.handleFunctionCall(w, r, envelope.Message.FunctionCall, log)

	default:
		log.Warn("invalid message type", map[string]interface{}{
			"messageType": messageType,
		})
		metrics.WebhookRequests.WithLabelValues("unknown", "invalid").Inc()
		h.obs.RecordRequest(r.Context(), messageType, "invalid")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
}

func (h *Handler) handleFunctionCall(w http.ResponseWriter, r *http.Request, inv functions.Invocation, log logger.Logger) {
	result, err := h.dispatcher.Dispatch(r.Context(), inv)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues(MessageTypeFunctionCall, "error").Inc()
		h.obs.RecordRequest(r.Context(), MessageTypeFunctionCall, "error")
		writeError(w, err)
		return
	}

	content, err := json.Marshal(result)
	if err != nil {
		log.Error("failed to marshal function result", map[string]interface{}{
			"function": inv.Name,
			"error":    err.Error(),
		})
		metrics.WebhookRequests.WithLabelValues(MessageTypeFunctionCall, "error").Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	metrics.WebhookRequests.WithLabelValues(MessageTypeFunctionCall, "success").Inc()
	h.obs.RecordRequest(r.Context(), MessageTypeFunctionCall, "success")

	// The platform expects the result as a JSON-encoded string.
	writeJSON(w, http.StatusOK, map[string]string{"content": string(content)})
}

// writeError translates the error taxonomy into the client-facing envelope.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	message := "Invalid request"
	if stdErr, ok := err.(*errors.StandardError); ok {
		message = stdErr.Message
	}
	writeJSON(w, errors.HTTPStatus(code), map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
