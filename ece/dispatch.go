package ece

import "crypto/rand"

// validateRS enforces spec §4.9's record-size bound: the plaintext
// budget per record (rs itself for the legacy variants, rs minus the
// AEAD tag for aes128gcm) must exceed the padding field by at least two
// bytes; a budget of exactly padSize+1 is rejected.
func validateRS(v Variant, rs uint32, padSize int) error {
	budget := int(rs)
	if v == VariantAES128GCM {
		budget -= tagLength
	}
	if budget <= padSize+1 {
		return ErrBadRecordSize
	}
	return nil
}

// Encrypt transforms plaintext into a sequence of AES-128-GCM
// protected records under the variant and key material named by p
// (spec §4.9, §6).
func Encrypt(plaintext []byte, p Params) ([]byte, error) {
	if p.Variant == 0 {
		return nil, ErrUnknownVariant
	}
	padSize := p.Variant.PadSize()
	rs := p.recordSize()
	if err := validateRS(p.Variant, rs, padSize); err != nil {
		return nil, err
	}

	salt := p.Salt
	switch {
	case p.Variant == VariantAES128GCM && salt == nil:
		salt = make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
	case salt == nil:
		return nil, ErrMissingSalt
	case len(salt) != 16:
		return nil, ErrBadSaltLength
	}

	if p.Variant == VariantAES128GCM && len(p.KeyID) > 255 {
		return nil, ErrKeyIDTooLong
	}

	resolved := p
	resolved.Salt = salt

	ks, err := deriveKeySchedule(resolved, ModeEncrypt)
	if err != nil {
		return nil, err
	}

	if p.Variant == VariantAES128GCM {
		header, err := encodeHeader(salt, rs, p.KeyID)
		if err != nil {
			return nil, err
		}
		records, err := encodeAES128GCM(ks, plaintext, rs, p.Pad)
		if err != nil {
			return nil, err
		}
		return append(header, records...), nil
	}

	return encodeLegacy(ks, plaintext, rs, p.Pad, padSize)
}

// Decrypt recovers the plaintext from a ciphertext produced by Encrypt
// under the same (or equivalent, per spec §8's round-trip law) Params.
func Decrypt(ciphertext []byte, p Params) ([]byte, error) {
	if p.Variant == 0 {
		return nil, ErrUnknownVariant
	}
	padSize := p.Variant.PadSize()

	if p.Variant == VariantAES128GCM {
		salt, rs, keyid, consumed, err := decodeHeader(ciphertext)
		if err != nil {
			return nil, err
		}
		if err := validateRS(p.Variant, rs, padSize); err != nil {
			return nil, err
		}

		resolved := p
		resolved.Salt = salt
		resolved.KeyID = keyid

		ks, err := deriveKeySchedule(resolved, ModeDecrypt)
		if err != nil {
			return nil, err
		}
		return decodeAES128GCM(ks, ciphertext[consumed:], rs)
	}

	switch {
	case p.Salt == nil:
		return nil, ErrMissingSalt
	case len(p.Salt) != 16:
		return nil, ErrBadSaltLength
	}
	rs := p.recordSize()
	if err := validateRS(p.Variant, rs, padSize); err != nil {
		return nil, err
	}

	ks, err := deriveKeySchedule(p, ModeDecrypt)
	if err != nil {
		return nil, err
	}
	return decodeLegacy(ks, ciphertext, rs, padSize)
}
