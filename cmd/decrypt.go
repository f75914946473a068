package cmd

import (
	"fmt"

	"github.com/go-ece/ece/ece"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a ciphertext produced by the Encrypted Content-Encoding scheme",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRootConfig(cmd)
	},
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	variant := viper.GetString("variant")
	if variant == "" {
		return fmt.Errorf("--variant is required")
	}

	ciphertext, err := readInput(viper.GetString("in"))
	if err != nil {
		return fmt.Errorf("reading ciphertext: %w", err)
	}

	store, err := openKeystore()
	if err != nil {
		return err
	}

	params, err := ece.WireParams{
		Variant:    variant,
		Salt:       viper.GetString("salt"),
		RS:         uint32(viper.GetUint("rs")),
		Key:        viper.GetString("key"),
		KeyID:      viper.GetString("keyid"),
		DH:         viper.GetString("dh"),
		AuthSecret: viper.GetString("auth-secret"),
		KeyStore:   store,
	}.Decode()
	if err != nil {
		return err
	}

	plaintext, err := ece.Decrypt(ciphertext, params)
	if err != nil {
		return err
	}

	return writeOutput(viper.GetString("out"), plaintext)
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmdInit()
}

// decryptCmdInit registers the decrypt command's flags. Named so
// tests can re-run it after ResetFlags().
func decryptCmdInit() {
	decryptCmd.Flags().String("variant", "aes128gcm", "aesgcm128, aesgcm, or aes128gcm")
	decryptCmd.Flags().String("in", "-", "Input file (default stdin)")
	decryptCmd.Flags().String("out", "-", "Output file (default stdout)")
	decryptCmd.Flags().String("salt", "", "base64url salt (required for aesgcm/aesgcm128; ignored for aes128gcm)")
	decryptCmd.Flags().Uint("rs", 4096, "Record size (ignored for aes128gcm, carried in its header)")
	decryptCmd.Flags().String("key", "", "base64url 16-byte content key")
	decryptCmd.Flags().String("keyid", "", "Keystore identifier")
	decryptCmd.Flags().String("dh", "", "base64url peer ECDH public key")
	decryptCmd.Flags().String("auth-secret", "", "base64url auth secret")
}
