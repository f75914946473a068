package ece

import "errors"

// Error kinds returned by Encrypt and Decrypt. All are fatal to the
// operation that produced them; none are retryable at this layer.
var (
	ErrMissingSalt        = errors.New("ece: missing salt")
	ErrBadSaltLength      = errors.New("ece: salt must be 16 bytes")
	ErrBadKeyLength       = errors.New("ece: key must be 16 bytes")
	ErrMissingKeyMaterial = errors.New("ece: none of key, dh, or keyid resolved to usable key material")
	ErrUnknownKeyID       = errors.New("ece: keyid not registered in the keystore")
	ErrMissingDHLabel     = errors.New("ece: ecdh key exchange used without a registered context label")
	ErrBadRecordSize      = errors.New("ece: invalid record size")
	ErrKeyIDTooLong       = errors.New("ece: keyid exceeds 255 bytes")
	ErrTruncatedPayload   = errors.New("ece: truncated payload")
	ErrBlockTooSmall      = errors.New("ece: record too small to hold an AEAD tag")
	ErrAEADFailure        = errors.New("ece: AEAD authentication failed")
	ErrInvalidPadding     = errors.New("ece: invalid record padding")
	ErrPadBudgetExhausted = errors.New("ece: could not distribute the requested padding")
	ErrUnknownVariant     = errors.New("ece: unrecognized content-encoding variant")
)
