package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-ece/ece/keystore"
)

func TestSaveKeyHandlerRaw(t *testing.T) {
	state := &State{Keys: keystore.NewMemory()}
	key := make([]byte, 16)

	body, _ := json.Marshal(saveKeyRequest{KeyID: "k1", Key: b64(key)})
	req := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	SaveKeyHandler(state).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got, ok, err := state.Keys.RawKey("k1")
	if err != nil || !ok {
		t.Fatalf("RawKey: ok=%v err=%v", ok, err)
	}
	if string(got) != string(key) {
		t.Fatal("stored key does not match request")
	}
}

func TestSaveKeyHandlerRejectsBothFields(t *testing.T) {
	state := &State{Keys: keystore.NewMemory()}
	body, _ := json.Marshal(saveKeyRequest{KeyID: "k1", Key: "a", DHPrivate: "b"})
	req := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	SaveKeyHandler(state).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSaveKeyHandlerRequiresKeyID(t *testing.T) {
	state := &State{Keys: keystore.NewMemory()}
	body, _ := json.Marshal(saveKeyRequest{Key: "a"})
	req := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	SaveKeyHandler(state).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
