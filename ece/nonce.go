package ece

// recordNonce derives the nonce for record i (0-based) by XORing i,
// big-endian, into the last 6 bytes of base (spec §4.4). The XOR is
// done byte-wise rather than as two 24-bit halves per spec §9's
// REDESIGN FLAG — the observable output is unchanged, the arithmetic
// is just native-width.
func recordNonce(base []byte, i uint64) []byte {
	nonce := make([]byte, len(base))
	copy(nonce, base)

	for shift := 0; shift < 6; shift++ {
		nonce[len(nonce)-1-shift] ^= byte(i >> (8 * shift))
	}
	return nonce
}
