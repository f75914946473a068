package ece

// Variant identifies one of the three Encrypted Content-Encoding wire
// formats. It is carried explicitly through Params rather than inferred
// from which fields happen to be set (see DESIGN.md, the ece/dispatch.go
// entry).
type Variant int

const (
	// VariantAESGCM128 is the original "aesgcm128" format: a 1-byte
	// padding-length field, salt and record size always out of band.
	VariantAESGCM128 Variant = iota + 1
	// VariantAESGCM is the "aesgcm" format: a 2-byte padding-length
	// field, salt and record size out of band, DH context roles bound
	// into the HKDF info string.
	VariantAESGCM
	// VariantAES128GCM is the "aes128gcm" format: a 2-byte padding-length
	// field with the high bit reserved as a last-record delimiter, salt
	// and record size carried in an in-band binary header.
	VariantAES128GCM
)

func (v Variant) String() string {
	switch v {
	case VariantAESGCM128:
		return "aesgcm128"
	case VariantAESGCM:
		return "aesgcm"
	case VariantAES128GCM:
		return "aes128gcm"
	default:
		return "unknown"
	}
}

// PadSize returns the width, in bytes, of the padding-length field this
// variant places at the front of every record: 1 for aesgcm128, 2 for
// aesgcm and aes128gcm.
func (v Variant) PadSize() int {
	if v == VariantAESGCM128 {
		return 1
	}
	return 2
}

// usesDelimiterBit reports whether the high bit of the first padding
// byte marks the last record, rather than the pad length being merely
// identified by a short final record.
func (v Variant) usesDelimiterBit() bool {
	return v == VariantAES128GCM
}

// ParseVariant looks up a Variant by its wire name.
func ParseVariant(name string) (Variant, bool) {
	switch name {
	case "aesgcm128":
		return VariantAESGCM128, true
	case "aesgcm":
		return VariantAESGCM, true
	case "aes128gcm":
		return VariantAES128GCM, true
	default:
		return 0, false
	}
}
