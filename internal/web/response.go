package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// standardError is the JSON body of every error response.
type standardError struct {
	Message string `json:"message"`
}

// responseJSON writes data as application/json with status.
func responseJSON(w http.ResponseWriter, status int, data any) error {
	d, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		d, _ = json.Marshal(standardError{Message: "failed to encode response"})
		err = fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(d)
	return err
}

// responseError writes a standardError with status.
func responseError(w http.ResponseWriter, status int, message string) error {
	return responseJSON(w, status, standardError{Message: message})
}

// statusError carries an HTTP status out of a handler.
type statusError struct {
	status  int
	message string
}

func (e statusError) Error() string {
	return fmt.Sprintf("%d: %s", e.status, e.message)
}
