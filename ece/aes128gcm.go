package ece

// aes128gcmPadSize is the padding-length field width used by the
// aes128gcm variant; the high bit of that field is the last-record
// delimiter (spec §4.7).
const aes128gcmPadSize = 2

// encodeAES128GCM implements §4.7 framing: each record fills its wire
// budget with pad ahead of whatever plaintext remains, and the
// delimiter bit marks the record that consumes the rest of both the
// plaintext and the pad budget — that record alone may fall short of
// the full wire budget.
func encodeAES128GCM(ks keySchedule, plaintext []byte, rs uint32, pad int) ([]byte, error) {
	plainBudget := int(rs) - tagLength
	out := make([]byte, 0, len(plaintext)+tagLength*(len(plaintext)/plainBudget+2))

	wireBudget := plainBudget - aes128gcmPadSize
	maxRecordPad := maxPad(aes128gcmPadSize, true)

	start := 0
	remaining := pad
	var counter uint64
	for {
		remainingPlain := len(plaintext) - start

		recordPad := remaining
		if recordPad > maxRecordPad {
			recordPad = maxRecordPad
		}
		if recordPad > wireBudget {
			recordPad = wireBudget
		}
		if recordPad < 0 {
			recordPad = 0
		}

		dataLen := wireBudget - recordPad
		if dataLen > remainingPlain {
			dataLen = remainingPlain
		}
		end := start + dataLen
		chunk := plaintext[start:end]

		final := end == len(plaintext) && remaining-recordPad == 0

		// A record that doesn't fill its wire budget must be the last
		// one; if it isn't, no record large enough to carry the rest
		// of the requested pad can ever be built (the variant's per-
		// record cap is smaller than a single record's wire budget).
		if recordPad+dataLen < wireBudget && !final {
			return nil, ErrPadBudgetExhausted
		}

		rec, err := sealRecord(ks.key, ks.nonceBase, counter, chunk, recordPad, aes128gcmPadSize, true, final)
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)

		remaining -= recordPad
		start = end
		counter++

		if final {
			break
		}
	}
	return out, nil
}

// decodeAES128GCM walks a §4.7-framed ciphertext, requiring the
// delimiter bit to land on exactly the last record.
func decodeAES128GCM(ks keySchedule, ciphertext []byte, rs uint32) ([]byte, error) {
	out := make([]byte, 0, len(ciphertext))

	wireRecLen := int(rs)
	pos := 0
	var counter uint64
	for pos < len(ciphertext) {
		recLen := wireRecLen
		if remaining := len(ciphertext) - pos; remaining < recLen {
			recLen = remaining
		}

		chunk, isLast, err := openRecord(ks.key, ks.nonceBase, counter, ciphertext[pos:pos+recLen], aes128gcmPadSize, true)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		pos += recLen
		counter++

		if isLast {
			if pos != len(ciphertext) {
				return nil, ErrInvalidPadding
			}
			return out, nil
		}
	}
	return nil, ErrTruncatedPayload
}
