// handlers/helpers.go
package handlers

import (
	"errors"
	"net/http"
)

// statusError carries an HTTP status out of a transaction closure so the
// handler can roll back and still answer with the right code.
type statusError struct {
	Status  int
	Message string
}

func (e statusError) Error() string { return e.Message }

func writeTxError(w http.ResponseWriter, err error) {
	var se statusError
	if errors.As(err, &se) {
		http.Error(w, se.Message, se.Status)
		return
	}
	http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
}
