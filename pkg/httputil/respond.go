package httputil

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// MaxBodyBytes bounds request bodies accepted by Decode.
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of a failed request.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Error writes err as an ErrorBody and returns the status it used.
func Error(w http.ResponseWriter, err error) int {
	status := StatusOf(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError && code == errors.ErrCodeInternal {
		msg = "internal error"
	}
	JSON(w, status, ErrorBody{Code: code, Message: msg})
	return status
}

// StatusOf maps an error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsInvalid(err), errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodePolicyViolation):
		return http.StatusConflict
	case errors.Is(err, errors.ErrCodeStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Decode reads a JSON request body into v. Malformed or oversized bodies
// yield INVALID_INPUT.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if stderrors.Is(err, io.EOF) {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body: %v", err)
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body has trailing data")
	}
	return nil
}
