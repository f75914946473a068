package ece

import (
	"crypto/hmac"
	"crypto/sha256"
)

// hashLen is the output length of SHA-256, in bytes.
const hashLen = sha256.Size

// hkdfExtract implements RFC 5869's HKDF-Extract: PRK = HMAC-SHA256(salt, ikm).
func hkdfExtract(salt, ikm []byte) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write(ikm)
	return mac.Sum(nil)
}

// hkdfExpand implements RFC 5869's HKDF-Expand, truncated to l bytes.
// l must not exceed 255*hashLen; the core never requests more than a
// handful of bytes, so this is an internal invariant rather than a
// caller-facing error.
func hkdfExpand(prk, info []byte, l int) []byte {
	if l > 255*hashLen {
		panic("ece: hkdfExpand length exceeds RFC 5869 limit")
	}

	out := make([]byte, 0, l+hashLen)
	var t []byte
	mac := hmac.New(sha256.New, prk)
	for i := byte(1); len(out) < l; i++ {
		mac.Reset()
		mac.Write(t)
		mac.Write(info)
		mac.Write([]byte{i})
		t = mac.Sum(nil)
		out = append(out, t...)
	}
	return out[:l]
}
