package ece

// encodeLegacy implements spec §4.6 framing for the aesgcm/aesgcm128
// variants: each record fills its rs-padSize wire budget with pad ahead
// of whatever plaintext remains, so every non-final record is exactly
// rs+tagLength bytes on the wire; the stream ends with a record that is
// genuinely short (or, if the budget divided plaintext+pad evenly, an
// explicit empty terminator), which is how decodeLegacy tells final
// from non-final.
func encodeLegacy(ks keySchedule, plaintext []byte, rs uint32, pad, padSize int) ([]byte, error) {
	out := make([]byte, 0, len(plaintext)+tagLength*(len(plaintext)/int(rs)+2))

	wireBudget := int(rs) - padSize
	maxRecordPad := maxPad(padSize, false)

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

		// A record that doesn't fill its wire budget is legal only as
		// the true last record of the stream; if pad is still left to
		// place after it, no record large enough to carry it can ever
		// be built (its cap is smaller than a single record's budget),
		// so the requested pad cannot be distributed.
		final := recordPad+dataLen < wireBudget
		if final && remaining-recordPad > 0 {
			return nil, ErrPadBudgetExhausted
		}

		end := start + dataLen
		rec, err := sealRecord(ks.key, ks.nonceBase, counter, plaintext[start:end], recordPad, padSize, false, false)
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

// decodeLegacy walks a ciphertext framed per §4.6, rejecting a
// full-size block that lands exactly on the buffer end as an
// ambiguous truncation.
func decodeLegacy(ks keySchedule, ciphertext []byte, rs uint32, padSize int) ([]byte, error) {
	out := make([]byte, 0, len(ciphertext))

	fullRecLen := int(rs) + tagLength
	pos := 0
	var counter uint64
	for {
		remainingBytes := len(ciphertext) - pos
		if remainingBytes == 0 {
			return nil, ErrTruncatedPayload
		}

		recLen := fullRecLen
		final := false
		switch {
		case remainingBytes < fullRecLen:
			recLen = remainingBytes
			final = true
		case remainingBytes == fullRecLen:
			return nil, ErrTruncatedPayload
		}

		chunk, _, err := openRecord(ks.key, ks.nonceBase, counter, ciphertext[pos:pos+recLen], padSize, false)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)

		pos += recLen
		counter++
		if final {
			break
		}
	}
	return out, nil
}
