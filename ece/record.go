package ece

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// tagLength is the AES-GCM authentication tag size, in bytes.
const tagLength = 16

// delimiterBit marks the last record in aes128gcm framing; it lives in
// the high bit of the first padding-length byte (spec §4.7).
const delimiterBit = 0x8000

// newAEAD builds the AES-128-GCM cipher for a derived content key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// maxPad returns the largest pad value padSize bytes can encode, given
// whether the top bit is reserved for the last-record delimiter. When
// reserved, the delimiter occupies bit 15, so the largest pad value
// that cannot collide with it is the all-ones value with that bit
// cleared, not half the unreserved range rounded up.
func maxPad(padSize int, useDelimiter bool) int {
	limit := 1<<(8*padSize) - 1
	if useDelimiter {
		limit >>= 1
	}
	return limit
}

// writePadHeader encodes the padSize-byte big-endian pad length header,
// folding in the delimiter bit when useDelimiter is set and this is the
// final record.
func writePadHeader(padSize, pad int, useDelimiter, isLast bool) ([]byte, error) {
	if pad < 0 || pad > maxPad(padSize, useDelimiter) {
		return nil, ErrInvalidPadding
	}

	header := make([]byte, padSize)
	switch padSize {
	case 1:
		header[0] = byte(pad)
	case 2:
		value := uint16(pad)
		if useDelimiter && isLast {
			value |= delimiterBit
		}
		binary.BigEndian.PutUint16(header, value)
	default:
		panic("ece: unsupported padSize")
	}
	return header, nil
}

// readPadHeader decodes a padSize-byte pad length header, masking off
// and reporting the delimiter bit when useDelimiter is set.
func readPadHeader(padSize int, useDelimiter bool, header []byte) (pad int, isLast bool, err error) {
	switch padSize {
	case 1:
		return int(header[0]), false, nil
	case 2:
		raw := binary.BigEndian.Uint16(header)
		if !useDelimiter {
			return int(raw), false, nil
		}
		return int(raw &^ delimiterBit), raw&delimiterBit != 0, nil
	default:
		panic("ece: unsupported padSize")
	}
}

// sealRecord encrypts one record: padding header, pad bytes, then
// plaintext, under AES-128-GCM with the nonce derived for record i
// (spec §4.5).
func sealRecord(key, nonceBase []byte, i uint64, plaintext []byte, pad, padSize int, useDelimiter, isLast bool) ([]byte, error) {
	header, err := writePadHeader(padSize, pad, useDelimiter, isLast)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, 0, len(header)+pad+len(plaintext))
	padded = append(padded, header...)
	padded = append(padded, make([]byte, pad)...)
	padded = append(padded, plaintext...)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := recordNonce(nonceBase, i)
	return aead.Seal(nil, nonce, padded, nil), nil
}

// openRecord decrypts and validates one record, returning its payload
// plaintext and whether its delimiter bit marked it as the last record
// (spec §4.5).
func openRecord(key, nonceBase []byte, i uint64, record []byte, padSize int, useDelimiter bool) (plaintext []byte, isLast bool, err error) {
	if len(record) <= tagLength {
		return nil, false, ErrBlockTooSmall
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, false, err
	}
	nonce := recordNonce(nonceBase, i)
	decrypted, err := aead.Open(nil, nonce, record, nil)
	if err != nil {
		return nil, false, ErrAEADFailure
	}

	if len(decrypted) < padSize {
		return nil, false, ErrInvalidPadding
	}
	pad, isLast, err := readPadHeader(padSize, useDelimiter, decrypted[:padSize])
	if err != nil {
		return nil, false, err
	}
	if padSize+pad > len(decrypted) {
		return nil, false, ErrInvalidPadding
	}
	for _, b := range decrypted[padSize : padSize+pad] {
		if b != 0 {
			return nil, false, ErrInvalidPadding
		}
	}
	return decrypted[padSize+pad:], isLast, nil
}
