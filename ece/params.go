package ece

import (
	"encoding/base64"
	"fmt"
)

// DHPrivateKey is the local half of an ECDH key pair, as held by a
// KeyStore entry registered with a dh label. It is the black-box ECDH
// collaborator spec'd in terms of "public_bytes()" and
// "compute_shared_secret()": implementations wrap crypto/ecdh or
// equivalent, but the core never imports a concrete curve package.
type DHPrivateKey interface {
	// PublicBytes returns the uncompressed public-key point.
	PublicBytes() []byte
	// SharedSecret computes the raw ECDH shared secret (the x-coordinate
	// for P-256) against a peer's uncompressed public-key point.
	SharedSecret(peerPublic []byte) ([]byte, error)
}

// KeyStore resolves a keyid to either raw key material or an ECDH
// private key plus its DH context label. Implementations are expected
// to be safe for concurrent reads (see spec §5); writes (save_key) are
// outside the core's contract and live on a richer interface in package
// keystore.
type KeyStore interface {
	// RawKey looks up a 16-byte content key registered under keyid.
	// ok is false if keyid names a DH entry or does not exist.
	RawKey(keyid string) (key []byte, ok bool, err error)
	// DHKey looks up an ECDH private key and its context label
	// registered under keyid. ok is false if keyid names a raw-key
	// entry or does not exist.
	DHKey(keyid string) (priv DHPrivateKey, label string, ok bool, err error)
}

// defaultRS is the record size used when Params.RS is left zero.
const defaultRS = 4096

// Params bundles one call's header parameters (spec §3). Byte-valued
// fields hold raw bytes; WireParams is the base64url-at-the-boundary
// counterpart used by callers that receive parameters off the wire.
type Params struct {
	// Variant selects the wire format explicitly; it is never inferred
	// from which other fields happen to be set (spec §9, "mode
	// selection ambiguity").
	Variant Variant

	Salt       []byte
	RS         uint32
	Key        []byte
	KeyID      string
	DH         []byte
	AuthSecret []byte
	Pad        int

	// KeyStore resolves KeyID to key material when Key is not supplied
	// directly, and resolves the local ECDH private key when DH is
	// supplied. May be nil if KeyID and DH are both unused.
	KeyStore KeyStore
}

// recordSize returns RS, defaulting it to defaultRS when zero.
func (p Params) recordSize() uint32 {
	if p.RS == 0 {
		return defaultRS
	}
	return p.RS
}

// WireParams is Params with byte fields carried as base64url (no
// padding) strings, matching the API boundary spec §6 describes.
type WireParams struct {
	Variant    string
	Salt       string
	RS         uint32
	Key        string
	KeyID      string
	DH         string
	AuthSecret string
	Pad        int
	KeyStore   KeyStore
}

// Decode base64url-decodes w's byte fields and resolves its Variant
// string, producing a Params ready for Encrypt/Decrypt.
func (w WireParams) Decode() (Params, error) {
	variant, ok := ParseVariant(w.Variant)
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownVariant, w.Variant)
	}

	p := Params{
		Variant:  variant,
		RS:       w.RS,
		KeyID:    w.KeyID,
		Pad:      w.Pad,
		KeyStore: w.KeyStore,
	}

	var err error
	if p.Salt, err = decodeField("salt", w.Salt); err != nil {
		return Params{}, err
	}
	if p.Key, err = decodeField("key", w.Key); err != nil {
		return Params{}, err
	}
	if p.DH, err = decodeField("dh", w.DH); err != nil {
		return Params{}, err
	}
	if p.AuthSecret, err = decodeField("authSecret", w.AuthSecret); err != nil {
		return Params{}, err
	}
	return p, nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("ece: decoding %s: %w", name, err)
	}
	return b, nil
}
