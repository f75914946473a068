package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-ece/ece/ecdh"
)

// saveKeyRequest is the JSON body of POST /v1/keys, implementing
// spec §6's save_key(id, key_material, optional dh_label). Exactly one
// of Key (a raw 16-byte content key) or DHPrivate (an ECDH private
// scalar) must be set.
type saveKeyRequest struct {
	KeyID     string `json:"keyid"`
	Key       string `json:"key,omitempty"`
	DHPrivate string `json:"dhPrivate,omitempty"`
	DHLabel   string `json:"dhLabel,omitempty"`
}

// SaveKeyHandler registers a keystore entry. Exposed as POST /v1/keys.
func SaveKeyHandler(state *State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req saveKeyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.KeyID == "" {
			writeError(w, http.StatusBadRequest, "keyid is required")
			return
		}
		if (req.Key == "") == (req.DHPrivate == "") {
			writeError(w, http.StatusBadRequest, "specify exactly one of key or dhPrivate")
			return
		}

		if req.Key != "" {
			key, err := base64.RawURLEncoding.DecodeString(req.Key)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid base64url key")
				return
			}
			if err := state.Keys.SaveRaw(req.KeyID, key); err != nil {
				writeError(w, statusFor(err), err.Error())
				return
			}
			writeJSON(w, http.StatusCreated, map[string]string{"keyid": req.KeyID})
			return
		}

		raw, err := base64.RawURLEncoding.DecodeString(req.DHPrivate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64url dhPrivate")
			return
		}
		priv, err := ecdh.Import(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := state.Keys.SaveDH(req.KeyID, priv, req.DHLabel); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"keyid": req.KeyID})
	})
}
