// Package ecdh is the ECDH backend collaborator spec.md §6 describes:
// it produces uncompressed P-256 public-key bytes and the raw
// shared-x-coordinate secret, and implements ece.DHPrivateKey so a
// keystore can hand key pairs straight to the core's key schedule.
package ecdh

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
)

// PrivateKey is a P-256 ECDH private key. It satisfies ece.DHPrivateKey
// structurally, without this package importing ece.
type PrivateKey struct {
	key *ecdh.PrivateKey
}

// Generate creates a fresh P-256 key pair using crypto/rand.
func Generate() (PrivateKey, error) {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("ecdh: generate key: %w", err)
	}
	return PrivateKey{key: key}, nil
}

// Import parses a raw P-256 private scalar, as produced by Bytes.
func Import(raw []byte) (PrivateKey, error) {
	key, err := ecdh.P256().NewPrivateKey(raw)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("ecdh: import private key: %w", err)
	}
	return PrivateKey{key: key}, nil
}

// Bytes returns the raw private scalar, suitable for persisting in a
// keystore and later round-tripping through Import.
func (k PrivateKey) Bytes() []byte {
	return k.key.Bytes()
}

// PublicBytes returns the uncompressed public-key point (0x04 || X || Y).
func (k PrivateKey) PublicBytes() []byte {
	return k.key.PublicKey().Bytes()
}

// SharedSecret computes the ECDH shared secret against a peer's
// uncompressed public-key point.
func (k PrivateKey) SharedSecret(peerPublic []byte) ([]byte, error) {
	peer, err := ecdh.P256().NewPublicKey(peerPublic)
	if err != nil {
		return nil, fmt.Errorf("ecdh: parse peer public key: %w", err)
	}
	secret, err := k.key.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("ecdh: compute shared secret: %w", err)
	}
	return secret, nil
}
