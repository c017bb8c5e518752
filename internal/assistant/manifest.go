// Package assistant builds the static assistant manifest returned for
// assistant-request messages. The payload is pure configuration; the only
// logic is substituting configured values into the template.
package assistant

import (
	"strings"

	"jari-backend/internal/common/config"
	"jari-backend/internal/common/validation"
)

// CheckAvailabilityFunction is the one function executed server-side.
const CheckAvailabilityFunction = "check_availability"

// TransferCallFunction is executed by the voice platform itself; only its
// schema is advertised here.
const TransferCallFunction = "transferCall"

type Manifest struct {
	Assistant Assistant `json:"assistant"`
}

type Assistant struct {
	FirstMessage string `json:"firstMessage"`
	Model        Model  `json:"model"`
}

type Model struct {
	Provider  string        `json:"provider"`
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	Functions []Function    `json:"functions"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Function struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Parameters  validation.JSONSchema `json:"parameters"`
	Messages    []StatusMessage       `json:"messages,omitempty"`
}

// StatusMessage is spoken by the platform while a function runs, gated on a
// parameter condition.
type StatusMessage struct {
	Type       string      `json:"type"`
	Content    string      `json:"content"`
	Conditions []Condition `json:"conditions,omitempty"`
}

type Condition struct {
	Param    string `json:"param"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

const transferPlaceholder = "{{TRANSFER_NUMBER}}"

const systemPrompt = `You are a helpful availability assistant. When a user asks about the availability of a specific person, use the check_availability function to retrieve the current availability information.

List of names:
1. Markus Salminen
2. John Doe
3. Jane Scotson
4. Pops Apell
5. Jari Moilanen

Name Matching Process:
1. When a user mentions a name, check if it exactly matches one of the names in the list above. if the person says, number 5 from your list meaning the list of names.
2. If there's an exact match, immediately use the check_availability function with that name.
3. If there isn't an exact match, but the name is similar to one in the list, ask the user: "Do you mean [closest matching name from the list]?"
4. If the user confirms, use the check_availability function with the confirmed name.
5. If the user doesn't confirm or no similar name is found, apologize and ask if they'd like to try another name.
6. Always use the exact spelling from the list when calling the check_availability function.

Remember, only call the check_availability function when you have an exact match from the list above.

After checking availability:
1. If the person is available:
   a) Inform the user that the person is available.
   b) Ask if they would like to be connected.
   c) If the user agrees, use the transferCall function with the number {{TRANSFER_NUMBER}}.
   d) If the user declines, ask if they'd like to check another person's availability.
2. If the person is not available:
   a) Inform the user that the person is not available.
   b) Ask if they would like to check another person's availability.

Important:
- Only use the transferCall function when a specific person has been requested, confirmed to be available, and the user has agreed to be connected.
- The transferCall function should be used with the phone number {{TRANSFER_NUMBER}} for all transfers.
- Do not offer to transfer the call unless you've confirmed the person's availability first.
`

// CheckAvailabilitySchema is shared between the manifest and the dispatcher's
// parameter validator, so the advertised contract and the enforced one cannot
// drift apart.
func CheckAvailabilitySchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"fullName"},
		Properties: map[string]validation.Property{
			"fullName": {
				Type:        "string",
				Description: "The full name of the person to check availability for, exactly as it appears in the list",
				MinLength:   intPtr(1),
			},
		},
	}
}

func transferCallSchema(transferNumber string) validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"destination"},
		Properties: map[string]validation.Property{
			"destination": {
				Type:        "string",
				Enum:        []string{transferNumber},
				Description: "The phone number to transfer the call to.",
			},
		},
	}
}

// NewManifest assembles the assistant description from configuration.
func NewManifest(cfg config.AssistantConfig) *Manifest {
	firstMessage := cfg.FirstMessage
	if firstMessage == "" {
		firstMessage = "Hello! I'm your availability assistant. How can I help you today?"
	}

	prompt := strings.ReplaceAll(systemPrompt, transferPlaceholder, cfg.TransferNumber)

	return &Manifest{
		Assistant: Assistant{
			FirstMessage: firstMessage,
			Model: Model{
				Provider: cfg.ModelProvider,
				Model:    cfg.ModelName,
				Messages: []ChatMessage{
					{Role: "system", Content: prompt},
				},
				Functions: []Function{
					{
						Name:        CheckAvailabilityFunction,
						Description: "Checks the availability for a specified person",
						Parameters:  CheckAvailabilitySchema(),
					},
					{
						Name:        TransferCallFunction,
						Description: "Use this function to transfer the call when the person is available and the user wants to be connected.",
						Parameters:  transferCallSchema(cfg.TransferNumber),
						Messages: []StatusMessage{
							{
								Type:    "request-start",
								Content: "I am forwarding your call. Please stay on the line.",
								Conditions: []Condition{
									{
										Param:    "destination",
										Operator: "eq",
										Value:    cfg.TransferNumber,
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func intPtr(i int) *int {
	return &i
}
