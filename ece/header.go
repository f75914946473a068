package ece

import "encoding/binary"

// aes128gcmHeaderMinLen is the smallest possible aes128gcm header:
// salt(16) + rs(4) + idlen(1), with an empty keyid (spec §4.7/§4.8).
const aes128gcmHeaderMinLen = 16 + 4 + 1

// encodeHeader serializes the aes128gcm in-band header.
func encodeHeader(salt []byte, rs uint32, keyid string) ([]byte, error) {
	if len(salt) != 16 {
		return nil, ErrBadSaltLength
	}
	if len(keyid) > 255 {
		return nil, ErrKeyIDTooLong
	}

	header := make([]byte, aes128gcmHeaderMinLen+len(keyid))
	copy(header, salt)
	binary.BigEndian.PutUint32(header[16:20], rs)
	header[20] = byte(len(keyid))
	copy(header[21:], keyid)
	return header, nil
}

// decodeHeader parses the aes128gcm in-band header, returning the
// number of bytes it consumed so framing can resume past it.
func decodeHeader(data []byte) (salt []byte, rs uint32, keyid string, consumed int, err error) {
	if len(data) < aes128gcmHeaderMinLen {
		return nil, 0, "", 0, ErrTruncatedPayload
	}

	salt = append([]byte(nil), data[:16]...)
	rs = binary.BigEndian.Uint32(data[16:20])
	idlen := int(data[20])

	consumed = aes128gcmHeaderMinLen + idlen
	if len(data) < consumed {
		return nil, 0, "", 0, ErrTruncatedPayload
	}
	keyid = string(data[aes128gcmHeaderMinLen:consumed])
	return salt, rs, keyid, consumed, nil
}
