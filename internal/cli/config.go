package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexbotov/iyzipay-go/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage iyzipay configuration",
	}
	cmd.AddCommand(a.configInitCmd(), a.configShowCmd())
	return cmd
}

func (a *app) configInitCmd() *cobra.Command {
	var force bool
	var apiKey, secretKey, baseURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if apiKey != "" {
				cfg.Client.APIKey = apiKey
			}
			if secretKey != "" {
				cfg.Client.SecretKey = secretKey
			}
			if baseURL != "" {
				cfg.Client.BaseURL = baseURL
			}

			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to store")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret key to store")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL to store")
	return cmd
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cfg.Client.SecretKey != "" {
				cfg.Client.SecretKey = mask(cfg.Client.SecretKey)
			}
			cfg.Sandbox.SecretKey = mask(cfg.Sandbox.SecretKey)

			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintf(a.out, "# %s\n%s", a.configPath(), data)
			return nil
		},
	}
}
