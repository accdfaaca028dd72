package handlers

import (
	"encoding/json"
	"net/http"
)

// Response is what an endpoint hands back to the HTTP shell.
type Response struct {
	Status int
	Body   any

	// ContentType and Raw replace the JSON body for binary payloads.
	ContentType string
	Raw         []byte
}

// EndpointFunc handles one route and returns either a response or an error
// for the shell to translate.
type EndpointFunc func(r *http.Request) (*Response, error)

func OK(body any) *Response      { return &Response{Status: http.StatusOK, Body: body} }
func Created(body any) *Response { return &Response{Status: http.StatusCreated, Body: body} }

type statusResponse struct {
	Status string `json:"status"`
}

var deletedResponse = statusResponse{Status: "deleted"}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorBody is the uniform error envelope: {"error": {"message", "status"}}.
type ErrorBody struct {
	Error errorDetail `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: errorDetail{Message: msg, Status: status}})
}

// Write sends resp using its JSON body or raw payload.
func (resp *Response) Write(w http.ResponseWriter) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Raw != nil {
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
		return
	}
	WriteJSON(w, status, resp.Body)
}
