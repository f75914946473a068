package ece

import "fmt"

// Mode distinguishes which side of a DH exchange the caller plays; it
// only affects which public key is "sender" and which is "recipient"
// in the DH context blob (spec §4.2).
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

// keySchedule is the pair of derived secrets spec §3 calls the "key
// schedule result": a 16-byte content key and a 12-byte nonce base.
type keySchedule struct {
	key       []byte
	nonceBase []byte
}

// deriveKeySchedule runs spec §4.3 end to end: resolve IKM, mix in an
// auth secret if present, extract a PRK, and expand it into the content
// key and nonce base.
func deriveKeySchedule(p Params, mode Mode) (keySchedule, error) {
	ikm, context, err := resolveIKM(p, mode)
	if err != nil {
		return keySchedule{}, err
	}

	if p.AuthSecret != nil {
		authInfo := longForm("auth", nil)
		prk := hkdfExtract(p.AuthSecret, ikm)
		ikm = hkdfExpand(prk, authInfo, 32)
	}

	prk := hkdfExtract(p.Salt, ikm)
	ks := keySchedule{
		key:       hkdfExpand(prk, keyInfo(p.Variant, context), 16),
		nonceBase: hkdfExpand(prk, nonceInfo(p.Variant, context), 12),
	}
	return ks, nil
}

// resolveIKM implements spec §4.3 step 1: pick key > dh > keyid, in
// that priority order, and build the DH context blob when applicable.
func resolveIKM(p Params, mode Mode) (ikm, context []byte, err error) {
	switch {
	case p.Key != nil:
		if len(p.Key) != 16 {
			return nil, nil, ErrBadKeyLength
		}
		return p.Key, nil, nil

	case p.DH != nil:
		return resolveDH(p, mode)

	case p.KeyID != "":
		if p.KeyStore == nil {
			return nil, nil, ErrUnknownKeyID
		}
		key, ok, err := p.KeyStore.RawKey(p.KeyID)
		if err != nil {
			return nil, nil, fmt.Errorf("ece: keystore lookup for %q: %w", p.KeyID, err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, p.KeyID)
		}
		return key, nil, nil

	default:
		return nil, nil, ErrMissingKeyMaterial
	}
}

// resolveDH computes the ECDH shared secret for the local private key
// registered under p.KeyID and builds the aesgcm DH context blob when
// the variant calls for one.
func resolveDH(p Params, mode Mode) (ikm, context []byte, err error) {
	if p.KeyStore == nil || p.KeyID == "" {
		return nil, nil, ErrMissingKeyMaterial
	}
	priv, label, ok, err := p.KeyStore.DHKey(p.KeyID)
	if err != nil {
		return nil, nil, fmt.Errorf("ece: keystore dh lookup for %q: %w", p.KeyID, err)
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, p.KeyID)
	}

	secret, err := priv.SharedSecret(p.DH)
	if err != nil {
		return nil, nil, fmt.Errorf("ece: ecdh shared secret: %w", err)
	}

	if p.Variant != VariantAESGCM {
		return secret, nil, nil
	}

	if label == "" {
		return nil, nil, ErrMissingDHLabel
	}
	localPub := priv.PublicBytes()
	var sender, recipient []byte
	if mode == ModeEncrypt {
		sender, recipient = localPub, p.DH
	} else {
		sender, recipient = p.DH, localPub
	}
	return secret, dhContext(label, sender, recipient), nil
}
