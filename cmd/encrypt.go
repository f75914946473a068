package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/go-ece/ece/ece"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt plaintext under the Encrypted Content-Encoding scheme",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRootConfig(cmd)
	},
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	variant := viper.GetString("variant")
	if variant == "" {
		return fmt.Errorf("--variant is required")
	}

	plaintext, err := readInput(viper.GetString("in"))
	if err != nil {
		return fmt.Errorf("reading plaintext: %w", err)
	}

	store, err := openKeystore()
	if err != nil {
		return err
	}

	saltWire := viper.GetString("salt")
	if saltWire == "" && variant != "aes128gcm" {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return err
		}
		saltWire = base64.RawURLEncoding.EncodeToString(salt)
		slog.Info("generated salt for out-of-band transport", "salt", saltWire)
	}

	params, err := ece.WireParams{
		Variant:    variant,
		Salt:       saltWire,
		RS:         uint32(viper.GetUint("rs")),
		Key:        viper.GetString("key"),
		KeyID:      viper.GetString("keyid"),
		DH:         viper.GetString("dh"),
		AuthSecret: viper.GetString("auth-secret"),
		Pad:        viper.GetInt("pad"),
		KeyStore:   store,
	}.Decode()
	if err != nil {
		return err
	}

	ciphertext, err := ece.Encrypt(plaintext, params)
	if err != nil {
		return err
	}

	return writeOutput(viper.GetString("out"), ciphertext)
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmdInit()
}

// encryptCmdInit registers the encrypt command's flags. Named so
// tests can re-run it after ResetFlags().
func encryptCmdInit() {
	encryptCmd.Flags().String("variant", "aes128gcm", "aesgcm128, aesgcm, or aes128gcm")
	encryptCmd.Flags().String("in", "-", "Input file (default stdin)")
	encryptCmd.Flags().String("out", "-", "Output file (default stdout)")
	encryptCmd.Flags().String("salt", "", "base64url salt (random for aes128gcm, generated for legacy variants if omitted)")
	encryptCmd.Flags().Uint("rs", 4096, "Record size")
	encryptCmd.Flags().String("key", "", "base64url 16-byte content key")
	encryptCmd.Flags().String("keyid", "", "Keystore identifier")
	encryptCmd.Flags().String("dh", "", "base64url peer ECDH public key")
	encryptCmd.Flags().String("auth-secret", "", "base64url auth secret")
	encryptCmd.Flags().Int("pad", 0, "Total padding octets to distribute")
}
