package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ListEnvelope wraps collection responses with the filter that produced them.
type ListEnvelope struct {
	Data   any    `json:"data"`
	Count  int    `json:"count"`
	Source string `json:"source,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
