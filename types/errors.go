package types

// RequestErrorDetails describes a request the gateway refused before any
// remote call.
type RequestErrorDetails struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RequestErrorResponse wraps RequestErrorDetails.
type RequestErrorResponse struct {
	Error RequestErrorDetails `json:"error"`
}

// DependencyErrorDetails describes a failure of the STS or the USI service.
type DependencyErrorDetails struct {
	DependencyFailure bool   `json:"dependency_failure"`
	Service           string `json:"service"`
	Status            int    `json:"status"`
	Endpoint          string `json:"endpoint"`
	Message           string `json:"message"`
}

// DependencyErrorResponse wraps DependencyErrorDetails.
type DependencyErrorResponse struct {
	Error DependencyErrorDetails `json:"error"`
}
