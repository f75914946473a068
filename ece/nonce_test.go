package ece

import (
	"bytes"
	"testing"
)

func TestRecordNonceXORsLastSixBytes(t *testing.T) {
	base := bytes.Repeat([]byte{0}, 12)

	got := recordNonce(base, 1)
	want := append(bytes.Repeat([]byte{0}, 11), 1)
	if !bytes.Equal(got, want) {
		t.Fatalf("recordNonce(base, 1) = %x, want %x", got, want)
	}

	got = recordNonce(base, 0x0102030405)
	want = []byte{0, 0, 0, 0, 0, 0, 0, 0x01, 0x02, 0x03, 0x04, 0x05}
	if !bytes.Equal(got, want) {
		t.Fatalf("recordNonce(base, 0x0102030405) = %x, want %x", got, want)
	}
}

func TestRecordNonceLeavesFirstSixBytesAlone(t *testing.T) {
	base := bytes.Repeat([]byte{0xFF}, 12)
	got := recordNonce(base, 42)
	if !bytes.Equal(got[:6], base[:6]) {
		t.Fatalf("first six bytes changed: got %x, want %x", got[:6], base[:6])
	}
}

func TestRecordNonceDoesNotMutateBase(t *testing.T) {
	base := bytes.Repeat([]byte{0}, 12)
	_ = recordNonce(base, 7)
	if !bytes.Equal(base, bytes.Repeat([]byte{0}, 12)) {
		t.Fatal("recordNonce mutated its base argument")
	}
}
