// Package agent defines the generation-call collaborator consumed by
// the orchestrator.
//
// The core consumes this request/response shape; it does not own the
// transport contract. Client is the HTTP implementation used in
// production, Caller the seam tests fake.
package agent

import "context"

// Request is one generation invocation. UserID and SessionID ride
// along as correlation context on every call.
type Request struct {
	Prompt    string
	AgentID   string
	UserID    string
	SessionID string
}

// File is an artifact descriptor returned alongside generated text.
type File struct {
	FileURL string `json:"fileUrl"`
}

// StructuredOutput is the structured-extraction fallback path of a
// response whose primary text field is empty.
type StructuredOutput struct {
	Output string `json:"output"`
}

// Response is the discriminated result of a generation call. Success
// false is a logical failure reported by the collaborator, as opposed
// to a transport failure surfaced as an error by Caller.Generate.
type Response struct {
	Success      bool              `json:"success"`
	Output       string            `json:"output"`
	Data         *StructuredOutput `json:"data,omitempty"`
	Files        []File            `json:"files,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// ExtractText returns the generated text with ordered fallback
// precedence: the primary Output field, else the structured Data
// fallback, else the empty string.
func ExtractText(resp *Response) string {
	if resp == nil {
		return ""
	}
	if resp.Output != "" {
		return resp.Output
	}
	if resp.Data != nil {
		return resp.Data.Output
	}
	return ""
}

// Caller invokes the external generation collaborator. Implementations
// own their transport concerns (timeouts, encoding); the orchestrator
// owns neither retry nor cancellation.
type Caller interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
