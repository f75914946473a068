// Package keystore provides implementations of the ece.KeyStore
// collaborator, plus the save_key operation (spec.md §6) that
// ece.KeyStore itself deliberately omits.
package keystore

import "github.com/go-ece/ece/ece"

// Entry mirrors spec.md §3's "Keystore entry": either raw key material
// or an ECDH private key plus its DH context label, never both.
type Entry struct {
	Raw   []byte
	DH    ece.DHPrivateKey
	Label string
}

// Store is a KeyStore that can also be written to. Writes are outside
// the core's contract (spec.md §5: "writes happen only through the
// explicit save operation"); ece.Encrypt/Decrypt only ever see the
// embedded ece.KeyStore half.
type Store interface {
	ece.KeyStore

	// SaveRaw registers a 16-byte content key under id.
	SaveRaw(id string, key []byte) error
	// SaveDH registers an ECDH private key under id, with the context
	// label used to build the aesgcm DH context blob.
	SaveDH(id string, priv ece.DHPrivateKey, label string) error
}
