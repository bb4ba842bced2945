// Package main provides the autodiscover CLI: it resolves the EWS
// endpoint (and optionally further settings) for a mailbox from the
// command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-autodiscover/internal/config"
	"github.com/sirosfoundation/go-autodiscover/pkg/autodiscover"
	"github.com/sirosfoundation/go-autodiscover/pkg/discovery"
	"github.com/sirosfoundation/go-autodiscover/pkg/transport"
)

func main() {
	var (
		configPath string
		email      string
		username   string
		password   string
		settings   []string
		noDNS      bool
		insecure   bool
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "autodiscover",
		Short: "Discover the EWS endpoint for a mailbox via Exchange SOAP Autodiscover",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg := &config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags override whatever the config file provided.
			if email != "" {
				cfg.Credentials.Email = email
			}
			if username != "" {
				cfg.Credentials.Username = username
			}
			if password != "" {
				cfg.Credentials.Password = password
			}
			if len(settings) > 0 {
				cfg.Settings = settings
			}
			if noDNS {
				cfg.DNS.Disabled = true
			}
			if insecure {
				cfg.Transport.InsecureSkipVerify = true
			}
			cfg.ApplyDefaults()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return run(cmd.Context(), cfg, logger)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.Flags().StringVar(&email, "email", "", "email address of the mailbox")
	rootCmd.Flags().StringVar(&username, "username", "", "authentication user name (defaults to the email address)")
	rootCmd.Flags().StringVar(&password, "password", "", "mailbox password (or set in the config file)")
	rootCmd.Flags().StringSliceVar(&settings, "settings", nil, "additional setting names to request")
	rootCmd.Flags().BoolVar(&noDNS, "no-dns", false, "disable SRV candidate-domain expansion")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log attempt lifecycle at debug level")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	httpsConfig := transport.DefaultHTTPSConfig()
	httpsConfig.Timeout = time.Duration(cfg.Transport.Timeout)
	httpsConfig.InsecureSkipVerify = cfg.Transport.InsecureSkipVerify

	client := autodiscover.NewClient(&autodiscover.ClientConfig{
		HTTPSConfig: httpsConfig,
		Logger:      logger,
		Expander: discovery.NewSRVExpanderWithConfig(discovery.SRVExpanderConfig{
			DNSServer: cfg.DNS.Server,
			Logger:    logger,
		}),
	})

	result, err := client.Discover(ctx, autodiscover.Request{
		EmailAddress: cfg.Credentials.Email,
		Username:     cfg.Credentials.Username,
		Password:     cfg.Credentials.Password,
		Settings:     cfg.Settings,
		DisableDNS:   cfg.DNS.Disabled,
	})
	if err != nil {
		return err
	}

	if result.Settings == nil {
		fmt.Println(result.URL)
		return nil
	}

	names := make([]string, 0, len(result.Settings))
	for name := range result.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, result.Settings[name])
	}
	return nil
}
