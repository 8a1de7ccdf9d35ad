// Package cli implements the iyzipay command line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexbotov/iyzipay-go/internal/config"
	"github.com/alexbotov/iyzipay-go/internal/database"
	"github.com/alexbotov/iyzipay-go/internal/journal"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	version string

	out    io.Writer
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "iyzipay",
		Short: "iyzico payment API client",
		Long: `iyzipay talks to the iyzico payment API.

It signs requests with the IYZWS and IYZWSv2 schemes, can run a local
sandbox that verifies those signatures, and optionally journals every call
to PostgreSQL.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ~/.iyzipay/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.versionCmd(),
		a.configCmd(),
		a.apiTestCmd(),
		a.binCmd(),
		a.installmentCmd(),
		a.paymentCmd(),
		a.linkCmd(),
		a.signCmd(),
		a.sandboxCmd(),
		a.journalCmd(),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultPath()
}

func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(a.configPath())
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) client() *iyzipay.Client {
	return iyzipay.NewClient(&iyzipay.ClientConfig{
		BaseURL:   a.cfg.Client.BaseURL,
		APIKey:    a.cfg.Client.APIKey,
		SecretKey: a.cfg.Client.SecretKey,
		Timeout:   a.cfg.Client.Timeout,
		Logger:    a.logger,
	})
}

func (a *app) request(conversationID string) iyzipay.Request {
	return iyzipay.Request{
		Locale:         iyzipay.Locale(a.cfg.Client.Locale),
		ConversationID: conversationID,
	}
}

func (a *app) openJournal() (*journal.Service, func(), error) {
	if !a.cfg.Journal.Enabled {
		return nil, nil, fmt.Errorf("journal is not configured: set journal.dsn or IYZIPAY_JOURNAL_DSN")
	}
	db, err := database.New(a.cfg.Journal.Driver, a.cfg.Journal.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return journal.New(db.DB), func() { db.Close() }, nil
}

// call is one API operation as seen by the journal.
type call struct {
	operation      string
	method         string
	endpoint       string
	scheme         string
	conversationID string
}

// run executes fn, journals the outcome when the journal is enabled and
// prints the result as JSON.
func (a *app) run(ctx context.Context, c call, fn func() (interface{}, error)) error {
	start := time.Now()
	result, err := fn()

	if a.cfg.Journal.Enabled {
		opts := []journal.Option{journal.WithDuration(time.Since(start)), journal.WithConversation(c.conversationID)}
		if err == nil {
			opts = append(opts, journal.WithData(result))
		}
		entry := journal.NewEntry(c.operation, c.method, c.endpoint, c.scheme, err, opts...)
		a.record(ctx, entry)
	}

	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func (a *app) record(ctx context.Context, entry *journal.Entry) {
	svc, closeDB, err := a.openJournal()
	if err != nil {
		a.logger.Warn("journal unavailable", "error", err)
		return
	}
	defer closeDB()

	if err := svc.Record(ctx, entry); err != nil {
		a.logger.Warn("failed to journal call", "operation", entry.Operation, "error", err)
	}
}

func (a *app) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "iyzipay %s (%s-%s)\n", a.version, iyzipay.ClientTitle, iyzipay.ClientVersion)
		},
	}
}
