package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/go-ece/ece/ecdh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage keystore entries",
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and save a keystore entry",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRootConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		keyid := viper.GetString("keyid")
		if keyid == "" {
			return fmt.Errorf("--keyid is required")
		}

		store, err := openKeystore()
		if err != nil {
			return err
		}

		if viper.GetBool("dh") {
			label := viper.GetString("dh-label")
			if label == "" {
				return fmt.Errorf("--dh-label is required when generating an ECDH key pair")
			}
			priv, err := ecdh.Generate()
			if err != nil {
				return err
			}
			if err := store.SaveDH(keyid, priv, label); err != nil {
				return err
			}
			fmt.Printf("saved ecdh key %q (label %q)\npublic: %s\n", keyid, label,
				base64.RawURLEncoding.EncodeToString(priv.PublicBytes()))
			return nil
		}

		key := make([]byte, 16)
		if _, err := rand.Read(key); err != nil {
			return err
		}
		if err := store.SaveRaw(keyid, key); err != nil {
			return err
		}
		fmt.Printf("saved raw key %q: %s\n", keyid, base64.RawURLEncoding.EncodeToString(key))
		return nil
	},
}

var keysPubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Print the public key bytes for a saved ECDH keystore entry",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRootConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		keyid := viper.GetString("keyid")
		if keyid == "" {
			return fmt.Errorf("--keyid is required")
		}

		store, err := openKeystore()
		if err != nil {
			return err
		}

		priv, _, ok, err := store.DHKey(keyid)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%q is not a registered ECDH keystore entry", keyid)
		}
		fmt.Println(base64.RawURLEncoding.EncodeToString(priv.PublicBytes()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysGenerateCmd)
	keysCmd.AddCommand(keysPubkeyCmd)
	keysCmdInit()
}

// keysCmdInit registers the keys subcommands' flags. Named so tests
// can re-run it after ResetFlags().
func keysCmdInit() {
	keysGenerateCmd.Flags().String("keyid", "", "Identifier to save the new entry under")
	keysGenerateCmd.Flags().Bool("dh", false, "Generate an ECDH key pair instead of a raw content key")
	keysGenerateCmd.Flags().String("dh-label", "", "DH context label, required with --dh")

	keysPubkeyCmd.Flags().String("keyid", "", "Identifier of the ECDH keystore entry to print")
}
