package ece

import "testing"

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"aesgcm128": VariantAESGCM128,
		"aesgcm":    VariantAESGCM,
		"aes128gcm": VariantAES128GCM,
	}
	for name, want := range cases {
		got, ok := ParseVariant(name)
		if !ok {
			t.Fatalf("ParseVariant(%q) reported not ok", name)
		}
		if got != want {
			t.Fatalf("ParseVariant(%q) = %v, want %v", name, got, want)
		}
	}

	if _, ok := ParseVariant("bogus"); ok {
		t.Fatal("ParseVariant(\"bogus\") should not be ok")
	}
}

func TestVariantPadSize(t *testing.T) {
	if got := VariantAESGCM128.PadSize(); got != 1 {
		t.Fatalf("aesgcm128 pad size = %d, want 1", got)
	}
	if got := VariantAESGCM.PadSize(); got != 2 {
		t.Fatalf("aesgcm pad size = %d, want 2", got)
	}
	if got := VariantAES128GCM.PadSize(); got != 2 {
		t.Fatalf("aes128gcm pad size = %d, want 2", got)
	}
}

func TestVariantUsesDelimiterBit(t *testing.T) {
	if VariantAESGCM128.usesDelimiterBit() || VariantAESGCM.usesDelimiterBit() {
		t.Fatal("legacy variants must not use the delimiter bit")
	}
	if !VariantAES128GCM.usesDelimiterBit() {
		t.Fatal("aes128gcm must use the delimiter bit")
	}
}

func TestVariantString(t *testing.T) {
	for name, v := range map[string]Variant{
		"aesgcm128": VariantAESGCM128,
		"aesgcm":    VariantAESGCM,
		"aes128gcm": VariantAES128GCM,
	} {
		if got := v.String(); got != name {
			t.Fatalf("String() = %q, want %q", got, name)
		}
	}
}
