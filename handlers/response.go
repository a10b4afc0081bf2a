package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"gym_service/errors"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type apiError struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func jsonResponse(writer http.ResponseWriter, status int, response apiResponse) {
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(response); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
	}
}

// writeError maps the failure taxonomy onto status codes. Anything outside
// the taxonomy is an unexpected backend fault and reported generically for
// this call only.
func writeError(writer http.ResponseWriter, err error) {
	var status int
	body := apiError{Error: err.Error()}

	var validation *errors.ValidationError

	switch {
	case stderrors.As(err, &validation):
		status = http.StatusBadRequest
		body.Error = "validation error"
		body.Messages = validation.Messages
	case errors.IsInvalidID(err):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsConflict(err):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		body.Error = "internal server error"
	}

	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func countOf(n int) *int {
	return &n
}
