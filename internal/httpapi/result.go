package httpapi

// Response is the envelope every endpoint returns. The settings and history
// screens key off success/message; errors carries the full validation list
// and missingFields the per-field boolean map of a rejected full replace.
type Response struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Data          any             `json:"data,omitempty"`
	Errors        []string        `json:"errors,omitempty"`
	MissingFields map[string]bool `json:"missingFields,omitempty"`
	// Error carries the raw error detail, echoed only in development mode.
	Error string `json:"error,omitempty"`
}

func Ok(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
