package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	pageHandler   pageHandler
	healthHandler healthHandler
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

type errorPage struct {
	StatusCode int
	Message    string
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
