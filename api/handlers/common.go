// Package handlers implements the HTTP surface over the ece core:
// /health, /v1/encrypt, /v1/decrypt, and /v1/keys. The encrypt, decrypt
// and keys handlers decode a JSON body and answer bad input with a JSON
// error response; encrypt and decrypt also log a failed ece operation
// at debug level. A wrong HTTP method gets a plain-text 405.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-ece/ece/ece"
	"github.com/go-ece/ece/keystore"
)

// State is the shared dependency every handler needs: the keystore
// backing keyid/dh resolution and save_key.
type State struct {
	Keys keystore.Store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps an ece error kind to the HTTP status it should
// surface as. Malformed input is a 400, an unregistered keyid is a
// 404, and a ciphertext that fails to authenticate or parse is a 422 -
// the request was well-formed but the payload itself was bad.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ece.ErrUnknownKeyID):
		return http.StatusNotFound
	case errors.Is(err, ece.ErrMissingSalt),
		errors.Is(err, ece.ErrBadSaltLength),
		errors.Is(err, ece.ErrBadKeyLength),
		errors.Is(err, ece.ErrMissingKeyMaterial),
		errors.Is(err, ece.ErrMissingDHLabel),
		errors.Is(err, ece.ErrBadRecordSize),
		errors.Is(err, ece.ErrKeyIDTooLong),
		errors.Is(err, ece.ErrUnknownVariant),
		errors.Is(err, ece.ErrPadBudgetExhausted):
		return http.StatusBadRequest
	case errors.Is(err, ece.ErrTruncatedPayload),
		errors.Is(err, ece.ErrBlockTooSmall),
		errors.Is(err, ece.ErrAEADFailure),
		errors.Is(err, ece.ErrInvalidPadding):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
