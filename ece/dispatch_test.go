package ece

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-ece/ece/ecdh"
)

func fixedSalt() []byte {
	s := make([]byte, 16)
	for i := range s {
		s[i] = byte(i)
	}
	return s
}

func fixedKey() []byte {
	k := make([]byte, 16)
	for i := range k {
		k[i] = byte(16 + i)
	}
	return k
}

func TestRoundTripAllVariants(t *testing.T) {
	plaintext := []byte("I am the walrus")
	key := fixedKey()

	for _, v := range []Variant{VariantAESGCM128, VariantAESGCM, VariantAES128GCM} {
		t.Run(v.String(), func(t *testing.T) {
			encParams := Params{Variant: v, Salt: fixedSalt(), Key: key, RS: 4096}
			ciphertext, err := Encrypt(plaintext, encParams)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}

			decParams := Params{Variant: v, Key: key, RS: 4096}
			if v != VariantAES128GCM {
				decParams.Salt = encParams.Salt
			}
			got, err := Decrypt(ciphertext, decParams)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Fatalf("round trip = %q, want %q", got, plaintext)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	plaintext := []byte("deterministic under a fixed salt and key")
	params := Params{Variant: VariantAES128GCM, Salt: fixedSalt(), Key: fixedKey(), RS: 4096}

	a, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("two encrypt runs with fixed salt/key produced different ciphertext")
	}
}

func TestPadIndependence(t *testing.T) {
	plaintext := []byte("some message of moderate length to pad around")
	key := fixedKey()
	salt := fixedSalt()

	for _, pad := range []int{0, 17, 200} {
		params := Params{Variant: VariantAES128GCM, Salt: salt, Key: key, RS: 4096, Pad: pad}
		ciphertext, err := Encrypt(plaintext, params)
		if err != nil {
			t.Fatalf("pad=%d Encrypt: %v", pad, err)
		}
		got, err := Decrypt(ciphertext, Params{Variant: VariantAES128GCM, Key: key, RS: 4096})
		if err != nil {
			t.Fatalf("pad=%d Decrypt: %v", pad, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("pad=%d round trip = %q, want %q", pad, got, plaintext)
		}
	}
}

func TestTamperEvidence(t *testing.T) {
	plaintext := []byte("tamper me if you can")
	params := Params{Variant: VariantAES128GCM, Salt: fixedSalt(), Key: fixedKey(), RS: 4096}
	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := append([]byte(nil), ciphertext...)
	tampered[len(tampered)-1] ^= 0xFF

	_, err = Decrypt(tampered, Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096})
	if !errors.Is(err, ErrAEADFailure) {
		t.Fatalf("err = %v, want ErrAEADFailure", err)
	}
}

func TestTruncationEvidenceLegacy(t *testing.T) {
	// rs=25, padSize=1 (aesgcm128) gives a 24-byte plaintext budget per
	// record; 48 bytes is an exact two-record multiple, which forces an
	// explicit empty terminator record after the two full ones.
	plaintext := bytes.Repeat([]byte("x"), 48)
	salt := fixedSalt()
	key := fixedKey()
	params := Params{Variant: VariantAESGCM128, Salt: salt, Key: key, RS: 25}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	fullLen := int(params.RS) + tagLength
	if len(ciphertext) <= fullLen*2 {
		t.Fatalf("expected at least two full records plus a terminator, got %d bytes", len(ciphertext))
	}

	// Cutting the stream off right after the two full records lands
	// exactly on a record boundary of length fullLen, which is
	// indistinguishable from a truncated full-size final record.
	truncated := ciphertext[:fullLen*2]
	_, err = Decrypt(truncated, Params{Variant: VariantAESGCM128, Salt: salt, Key: key, RS: 25})
	if !errors.Is(err, ErrTruncatedPayload) {
		t.Fatalf("err = %v, want ErrTruncatedPayload", err)
	}
}

func TestTruncationEvidenceAES128GCM(t *testing.T) {
	plaintext := bytes.Repeat([]byte("y"), 9000)
	params := Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	truncated := ciphertext[:len(ciphertext)-tagLength-1]
	_, err = Decrypt(truncated, Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096})
	if err == nil {
		t.Fatal("expected an error decrypting a truncated aes128gcm stream")
	}
}

func TestRoleSymmetryECDH(t *testing.T) {
	alice, err := ecdh.Generate()
	if err != nil {
		t.Fatalf("generate alice: %v", err)
	}
	bob, err := ecdh.Generate()
	if err != nil {
		t.Fatalf("generate bob: %v", err)
	}

	store := newTestKeyStore()
	store.dh["alice"] = dhEntry{priv: alice, label: "P-256"}
	store.dh["bob"] = dhEntry{priv: bob, label: "P-256"}

	plaintext := []byte("role symmetric message")
	salt := fixedSalt()

	encParams := Params{
		Variant:  VariantAESGCM,
		Salt:     salt,
		KeyID:    "alice",
		DH:       bob.PublicBytes(),
		KeyStore: store,
		RS:       4096,
	}
	ciphertext, err := Encrypt(plaintext, encParams)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	decParams := Params{
		Variant:  VariantAESGCM,
		Salt:     salt,
		KeyID:    "bob",
		DH:       alice.PublicBytes(),
		KeyStore: store,
		RS:       4096,
	}
	got, err := Decrypt(ciphertext, decParams)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip = %q, want %q", got, plaintext)
	}
}

func TestBoundaryRSTooSmall(t *testing.T) {
	padSize := VariantAESGCM128.PadSize()
	params := Params{Variant: VariantAESGCM128, Salt: fixedSalt(), Key: fixedKey(), RS: uint32(padSize + 1)}

	_, err := Encrypt([]byte("x"), params)
	if !errors.Is(err, ErrBadRecordSize) {
		t.Fatalf("err = %v, want ErrBadRecordSize", err)
	}
}

func TestBoundaryKeyIDLength(t *testing.T) {
	key := fixedKey()

	valid := make([]byte, 255)
	params := Params{Variant: VariantAES128GCM, Key: key, KeyID: string(valid)}
	if _, err := Encrypt([]byte("hi"), params); err != nil {
		t.Fatalf("255-byte keyid should be accepted: %v", err)
	}

	tooLong := make([]byte, 256)
	params.KeyID = string(tooLong)
	if _, err := Encrypt([]byte("hi"), params); !errors.Is(err, ErrKeyIDTooLong) {
		t.Fatalf("err = %v, want ErrKeyIDTooLong", err)
	}
}

func TestEmptyPlaintext(t *testing.T) {
	for _, v := range []Variant{VariantAESGCM128, VariantAESGCM, VariantAES128GCM} {
		params := Params{Variant: v, Salt: fixedSalt(), Key: fixedKey(), RS: 4096}
		ciphertext, err := Encrypt(nil, params)
		if err != nil {
			t.Fatalf("%s Encrypt empty: %v", v, err)
		}

		decParams := Params{Variant: v, Key: fixedKey(), RS: 4096}
		if v != VariantAES128GCM {
			decParams.Salt = params.Salt
		}
		got, err := Decrypt(ciphertext, decParams)
		if err != nil {
			t.Fatalf("%s Decrypt empty: %v", v, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s expected empty plaintext, got %q", v, got)
		}
	}
}

func TestPadBudgetLargerThanSingleRecord(t *testing.T) {
	plaintext := bytes.Repeat([]byte("z"), 50)
	params := Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 100, Pad: 10000}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := Decrypt(ciphertext, Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 100})
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip = %q, want %q", got, plaintext)
	}
}

func TestScenarioExplicitPad(t *testing.T) {
	plaintext := bytes.Repeat([]byte("w"), 50)
	params := Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096, Pad: 100}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	wantLen := aes128gcmHeaderMinLen + 50 + 100 + 2 + tagLength
	if len(ciphertext) != wantLen {
		t.Fatalf("ciphertext length = %d, want %d", len(ciphertext), wantLen)
	}

	got, err := Decrypt(ciphertext, Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096})
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("padding was not ignored correctly")
	}
}

func TestPadBudgetLargerThanRecordLegacy(t *testing.T) {
	plaintext := bytes.Repeat([]byte("a"), 20)
	salt := fixedSalt()
	key := fixedKey()
	params := Params{Variant: VariantAESGCM128, Salt: salt, Key: key, RS: 50, Pad: 10000}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := Decrypt(ciphertext, Params{Variant: VariantAESGCM128, Salt: salt, Key: key, RS: 50})
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip = %q, want %q", got, plaintext)
	}
}

func TestPadBudgetExhaustedWhenUndistributable(t *testing.T) {
	// rs=40000 gives an aes128gcm wire budget (39982) larger than a
	// single record can ever carry as pad (maxPad(2, true) = 32767), so
	// a pad request that outlives the plaintext can never be finished
	// off by a dedicated padding-only record.
	plaintext := bytes.Repeat([]byte("b"), 10)
	params := Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 40000, Pad: 50000}

	_, err := Encrypt(plaintext, params)
	if !errors.Is(err, ErrPadBudgetExhausted) {
		t.Fatalf("err = %v, want ErrPadBudgetExhausted", err)
	}
}

func TestDelimiterMisuseRejected(t *testing.T) {
	plaintext := bytes.Repeat([]byte("q"), 9000)
	params := Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: 4096}

	ciphertext, err := Encrypt(plaintext, params)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// Decode the header to find where the first record starts, then
	// re-seal that first (non-final) record with its delimiter bit
	// forced on.
	salt, rs, _, consumed, err := decodeHeader(ciphertext)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}

	ks, err := deriveKeySchedule(Params{Variant: VariantAES128GCM, Salt: salt, Key: fixedKey(), RS: rs}, ModeDecrypt)
	if err != nil {
		t.Fatalf("deriveKeySchedule: %v", err)
	}

	firstRecord := ciphertext[consumed : consumed+int(rs)]
	chunk, isLast, err := openRecord(ks.key, ks.nonceBase, 0, firstRecord, aes128gcmPadSize, true)
	if err != nil {
		t.Fatalf("openRecord: %v", err)
	}
	if isLast {
		t.Fatal("test setup assumption violated: first record should not already be final")
	}

	resealed, err := sealRecord(ks.key, ks.nonceBase, 0, chunk, 0, aes128gcmPadSize, true, true)
	if err != nil {
		t.Fatalf("sealRecord: %v", err)
	}

	mutated := append([]byte(nil), ciphertext[:consumed]...)
	mutated = append(mutated, resealed...)
	mutated = append(mutated, ciphertext[consumed+int(rs):]...)

	_, err = Decrypt(mutated, Params{Variant: VariantAES128GCM, Key: fixedKey(), RS: rs})
	if !errors.Is(err, ErrInvalidPadding) {
		t.Fatalf("err = %v, want ErrInvalidPadding", err)
	}
}
