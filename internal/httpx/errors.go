package httpx

import (
	"errors"
	"log"
	"net/http"

	"booklib/internal/apperr"
)

// Error codes returned in the error envelope.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE"
	CodeInvalidBody = "INVALID_BODY"
	CodeInternal    = "INTERNAL_ERROR"
)

// WriteError maps a domain error to its HTTP response: not-found kinds
// to 404, validation/duplicate/referential kinds to 400, everything
// else to 500. Persistence details are logged, never sent to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsNotFound(err):
		JSONError(w, http.StatusNotFound, CodeNotFound, err.Error(), nil)

	case apperr.IsDuplicate(err):
		JSONError(w, http.StatusBadRequest, CodeDuplicate, err.Error(), nil)

	case apperr.IsValidation(err):
		var details []ErrorDetail
		var ve *apperr.ValidationError
		if errors.As(err, &ve) && ve.Field != "" {
			details = []ErrorDetail{{Field: ve.Field, Message: ve.Message}}
		}
		var re *apperr.ReferentialError
		if errors.As(err, &re) {
			details = []ErrorDetail{{Field: re.Field, Message: re.Error()}}
		}
		JSONError(w, http.StatusBadRequest, CodeValidation, err.Error(), details)

	default:
		message := "Internal server error"
		var se *apperr.StorageError
		if errors.As(err, &se) {
			message = capitalizeMessage(se.Op)
		}
		log.Printf("internal error: request_id=%s method=%s path=%s error=%v",
			RequestIDFrom(r), r.Method, r.URL.Path, err)
		JSONError(w, http.StatusInternalServerError, CodeInternal, message, nil)
	}
}

// NotFoundResponse is the fallback body for unknown routes and malformed
// path parameters.
func NotFoundResponse(w http.ResponseWriter) {
	JSONError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowedResponse is the fallback for unsupported methods.
func MethodNotAllowedResponse(w http.ResponseWriter) {
	JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed for this endpoint", nil)
}

// InvalidBodyResponse rejects requests whose body is not valid JSON.
func InvalidBodyResponse(w http.ResponseWriter) {
	JSONError(w, http.StatusBadRequest, CodeInvalidBody, "Request body must be valid JSON", nil)
}

func capitalizeMessage(s string) string {
	if s == "" {
		return "Internal server error"
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
