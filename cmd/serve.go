package cmd

import (
	"net/http"

	"github.com/go-ece/ece/api/handlers"
	"github.com/go-ece/ece/internal/config"
	"github.com/go-ece/ece/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve encrypt/decrypt/save_key over HTTP",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRootConfig(cmd)
	},
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.ServerConfig{
		Log: config.LogConfig{Level: viper.GetString("log-level")},
		HTTP: config.HTTPConfig{
			IP:       viper.GetString("http-ip"),
			Port:     viper.GetString("http-port"),
			CertPath: viper.GetString("http-cert"),
			KeyPath:  viper.GetString("http-key"),
		},
		Keystore: config.KeystoreConfig{
			Type: viper.GetString("keystore-type"),
			DSN:  viper.GetString("keystore-dsn"),
		},
		RateLimit: config.RateLimitConfig{
			RPS:   viper.GetFloat64("rate-rps"),
			Burst: viper.GetInt("rate-burst"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Log.Level != "" {
		if err := logLevel.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			return err
		}
	}

	store, err := cfg.Keystore.Open()
	if err != nil {
		return err
	}

	state := &handlers.State{Keys: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.HealthHandler)
	mux.Handle("POST /v1/encrypt", handlers.EncryptHandler(state))
	mux.Handle("POST /v1/decrypt", handlers.DecryptHandler(state))
	mux.Handle("POST /v1/keys", handlers.SaveKeyHandler(state))

	var opts []server.Option
	if cfg.HTTP.UseTLS() {
		opts = append(opts, server.WithTLS(cfg.HTTP.CertPath, cfg.HTTP.KeyPath))
	}
	if cfg.RateLimit.Enabled() {
		opts = append(opts, server.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	return server.New(cfg.HTTP.ListenAddress(), mux, opts...).Start()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmdInit()
}

// serveCmdInit registers the serve command's flags. Named so tests
// can re-run it after ResetFlags().
func serveCmdInit() {
	serveCmd.Flags().String("log-level", "", "Log level: debug, info, warn, or error")
	serveCmd.Flags().String("http-ip", "0.0.0.0", "Address to listen on")
	serveCmd.Flags().String("http-port", "8080", "Port to listen on")
	serveCmd.Flags().String("http-cert", "", "TLS certificate path")
	serveCmd.Flags().String("http-key", "", "TLS key path")
	serveCmd.Flags().Float64("rate-rps", 0, "Per-address requests/second limit (0 disables)")
	serveCmd.Flags().Int("rate-burst", 10, "Per-address burst size")
}
