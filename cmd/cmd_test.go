package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
)

func resetState(t *testing.T) {
	t.Helper()
	viper.Reset()
	for _, c := range rootCmd.Commands() {
		c.ResetFlags()
		for _, sub := range c.Commands() {
			sub.ResetFlags()
		}
	}
	rootCmd.ResetFlags()
	rootCmd.SetArgs(nil)

	rootCmdInit()
	keysCmdInit()
	encryptCmdInit()
	decryptCmdInit()
	serveCmdInit()
}

func TestEncryptRequiresVariant(t *testing.T) {
	resetState(t)

	rootCmd.SetArgs([]string{"encrypt", "--variant", "", "--key", "AAAAAAAAAAAAAAAAAAAAAA"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error when --variant is empty")
	}
}

func TestKeysGenerateRequiresKeyID(t *testing.T) {
	resetState(t)

	rootCmd.SetArgs([]string{"keys", "generate"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error when --keyid is missing")
	}
}

func TestKeysGenerateAndPubkeyRoundTrip(t *testing.T) {
	// The default "memory" keystore backend is a fresh, empty store on
	// every invocation, so two separate CLI invocations never see the
	// same entries. Point both invocations at the same in-process
	// sqlite database to actually exercise persistence across them.
	dsn := "file:cmdtest_keys_roundtrip?mode=memory&cache=shared"

	resetState(t)
	rootCmd.SetArgs([]string{"keys", "generate", "--keystore-type", "sqlite", "--keystore-dsn", dsn, "--keyid", "peer", "--dh", "--dh-label", "P-256"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("keys generate: %v", err)
	}

	resetState(t)
	rootCmd.SetArgs([]string{"keys", "pubkey", "--keystore-type", "sqlite", "--keystore-dsn", dsn, "--keyid", "peer"})
	out.Reset()
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("keys pubkey: %v", err)
	}
}
