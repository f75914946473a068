package ece

import "encoding/binary"

// lenPrefixed returns a 2-byte big-endian length followed by x, the
// encoding §4.2 uses for the sender/recipient public keys inside a DH
// context blob.
func lenPrefixed(x []byte) []byte {
	out := make([]byte, 2+len(x))
	binary.BigEndian.PutUint16(out, uint16(len(x)))
	copy(out[2:], x)
	return out
}

// dhContext builds the `aesgcm` DH context blob: label || lenPrefix(recipientPub) || lenPrefix(senderPub).
// label is the context label stored alongside the ECDH private key,
// without a terminator; dhContext appends the NUL. sender/recipient are already resolved to the correct
// roles for the operation in progress (encrypt: sender=local,
// recipient=peer; decrypt: sender=peer, recipient=local).
func dhContext(label string, senderPub, recipientPub []byte) []byte {
	out := make([]byte, 0, len(label)+1+2+len(recipientPub)+2+len(senderPub))
	out = append(out, label...)
	out = append(out, 0)
	out = append(out, lenPrefixed(recipientPub)...)
	out = append(out, lenPrefixed(senderPub)...)
	return out
}

// shortFormInfo builds the aesgcm128 info string, which carries no
// trailing NUL and no context blob.
func shortFormInfo(base string) []byte {
	return []byte("Content-Encoding: " + base)
}

// longForm builds the aesgcm/aes128gcm info string: "Content-Encoding:
// <base>\0" followed by an (often empty) context blob.
func longForm(base string, context []byte) []byte {
	out := make([]byte, 0, len("Content-Encoding: ")+len(base)+1+len(context))
	out = append(out, "Content-Encoding: "+base...)
	out = append(out, 0)
	out = append(out, context...)
	return out
}

// keyInfo returns the HKDF info string used to derive the content key.
func keyInfo(v Variant, context []byte) []byte {
	if v == VariantAESGCM128 {
		return shortFormInfo("aesgcm128")
	}
	return longForm(v.String(), context)
}

// nonceInfo returns the HKDF info string used to derive the nonce base.
func nonceInfo(v Variant, context []byte) []byte {
	if v == VariantAESGCM128 {
		return shortFormInfo("nonce")
	}
	return longForm("nonce", context)
}
