// Package cmd implements the `ece` command-line tool: encrypt,
// decrypt, keys, and serve, on top of the ece core and its keystore
// and HTTP-server collaborators.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-ece/ece/internal/config"
	"github.com/go-ece/ece/keystore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "ece",
	Short: "Encrypted Content-Encoding for HTTP: encrypt, decrypt, and manage keys",
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the
// rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))
	rootCmdInit()
}

// rootCmdInit registers the root command's persistent flags. It is a
// named function, not inline init() body, so tests can re-run it after
// rootCmd.ResetFlags().
func rootCmdInit() {
	rootCmd.PersistentFlags().Bool("debug", false, "Print debug logging")
	rootCmd.PersistentFlags().String("config", "", "Pathname of a YAML configuration file")
	rootCmd.PersistentFlags().String("keystore-type", "memory", "Keystore backend: memory, sqlite, or postgres")
	rootCmd.PersistentFlags().String("keystore-dsn", "", "Data source name for the sqlite/postgres keystore backend")
}

// loadRootConfig binds the current command's flags into viper, loads
// the configuration file if one was named, and applies the shared
// persistent flags (--debug). Subcommands call this from PreRunE
// before reading their own flags out of viper.
func loadRootConfig(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return err
	}

	if configFilePath := viper.GetString("config"); configFilePath != "" {
		slog.Debug("loading configuration file", "path", configFilePath)
		viper.SetConfigFile(configFilePath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("configuration file read failed: %w", err)
		}
	}

	if viper.GetBool("debug") {
		logLevel.Set(slog.LevelDebug)
	}
	return nil
}

// openKeystore builds the keystore.Store named by the bound
// --keystore-type/--keystore-dsn flags.
func openKeystore() (keystore.Store, error) {
	kc := config.KeystoreConfig{
		Type: viper.GetString("keystore-type"),
		DSN:  viper.GetString("keystore-dsn"),
	}
	return kc.Open()
}
