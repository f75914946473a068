package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-ece/ece/ece"
)

// decryptRequest is the JSON body of POST /v1/decrypt.
type decryptRequest struct {
	Variant    string `json:"variant"`
	Ciphertext string `json:"ciphertext"`
	Salt       string `json:"salt,omitempty"`
	RS         uint32 `json:"rs,omitempty"`
	Key        string `json:"key,omitempty"`
	KeyID      string `json:"keyid,omitempty"`
	DH         string `json:"dh,omitempty"`
	AuthSecret string `json:"authSecret,omitempty"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// DecryptHandler runs ece.Decrypt over a JSON request body. Exposed as
// POST /v1/decrypt.
func DecryptHandler(state *State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req decryptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ciphertext, err := base64.RawURLEncoding.DecodeString(req.Ciphertext)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64url ciphertext")
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
			KeyStore:   state.Keys,
		}.Decode()
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		plaintext, err := ece.Decrypt(ciphertext, params)
		if err != nil {
			slog.Debug("decrypt failed", "err", err)
			writeError(w, statusFor(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, decryptResponse{
			Plaintext: base64.RawURLEncoding.EncodeToString(plaintext),
		})
	})
}
