package scheduling

// statusResponse is the first-stage response shape. Content is itself a
// JSON-encoded string that gets decoded a second time; the double encoding is
// how the upstream actually behaves, not an accident of this client.
type statusResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// statusContent is the decoded shape of the content field.
type statusContent struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Verdict is the normalized availability outcome. Available is true only for
// the exact status string "available"; every other status, including absent
// (reported as "unknown"), is not available. Details retains the decoded
// content verbatim for diagnostic echo-back.
type Verdict struct {
	Available bool                   `json:"available"`
	Status    string                 `json:"status"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
