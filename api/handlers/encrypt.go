package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-ece/ece/ece"
)

// encryptRequest is the JSON body of POST /v1/encrypt. Byte-valued
// fields are base64url (no padding), matching the core's wire
// boundary (spec §6).
type encryptRequest struct {
	Variant    string `json:"variant"`
	Plaintext  string `json:"plaintext"`
	Salt       string `json:"salt,omitempty"`
	RS         uint32 `json:"rs,omitempty"`
	Key        string `json:"key,omitempty"`
	KeyID      string `json:"keyid,omitempty"`
	DH         string `json:"dh,omitempty"`
	AuthSecret string `json:"authSecret,omitempty"`
	Pad        int    `json:"pad,omitempty"`
}

type encryptResponse struct {
	Ciphertext string `json:"ciphertext"`
}

// EncryptHandler runs ece.Encrypt over a JSON request body. Exposed as
// POST /v1/encrypt.
func EncryptHandler(state *State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req encryptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		plaintext, err := base64.RawURLEncoding.DecodeString(req.Plaintext)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64url plaintext")
			return
		}

		params, err := ece.WireParams{
			Variant:    req.Variant,
			Salt:       req.Salt,
			RS:         req.RS,
			Key:        req.Key,
			KeyID:      req.KeyID,
			DH:         req.DH,
			AuthSecret: req.AuthSecret,
			Pad:        req.Pad,
			KeyStore:   state.Keys,
		}.Decode()
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		ciphertext, err := ece.Encrypt(plaintext, params)
		if err != nil {
			slog.Debug("encrypt failed", "err", err)
			writeError(w, statusFor(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, encryptResponse{
			Ciphertext: base64.RawURLEncoding.EncodeToString(ciphertext),
		})
	})
}
