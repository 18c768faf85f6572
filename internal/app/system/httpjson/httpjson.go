// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response helpers shared by
// every feature handler. Responses are always JSON: either the
// requested resource or an object with an "error" field.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Decode reads the request body into dst. A malformed or empty body is
// a Validation error.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.Wrap(apierr.Validation, "request body must be valid JSON", err)
	}
	return nil
}

// Write serializes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of a failed request.
type ErrorBody struct {
	Error     string `json:"error"`
	Succeeded string `json:"succeeded,omitempty"`
	Failed    string `json:"failed,omitempty"`
}

// WriteError translates err through the taxonomy and writes it. Server
// faults are logged with their cause; the caller only sees the safe
// message.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var pf *apierr.PartialFailure
	if errors.As(err, &pf) {
		logger.Error("partial consistency write", zap.Error(pf))
		Write(w, http.StatusMultiStatus, ErrorBody{
			Error:     pf.Message,
			Succeeded: pf.Succeeded,
			Failed:    pf.Failed,
		})
		return
	}

	if ae, ok := apierr.As(err); ok {
		if ae.Status() >= 500 {
			logger.Error("request failed", zap.Error(ae))
		}
		Write(w, ae.Status(), ErrorBody{Error: ae.Message})
		return
	}

	logger.Error("unclassified request failure", zap.Error(err))
	Write(w, http.StatusInternalServerError, ErrorBody{Error: "internal error"})
}
