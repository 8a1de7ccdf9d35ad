package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexbotov/iyzipay-go/internal/journal"
)

func (a *app) journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect journaled API calls",
	}
	cmd.AddCommand(a.journalListCmd())
	return cmd
}

func (a *app) journalListCmd() *cobra.Command {
	var filter journal.Filter
	var since time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled calls, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeDB()

			if since > 0 {
				filter.From = time.Now().UTC().Add(-since)
			}
			entries, err := svc.List(cmd.Context(), &filter)
			if err != nil {
				return err
			}

			if asJSON {
				return a.printJSON(entries)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tOPERATION\tSTATUS\tCODE\tCONVERSATION\tDURATION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Format(time.RFC3339), e.Operation, e.Status, e.ErrorCode, e.ConversationID, e.Duration)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Operation, "operation", "", "Only show this operation, e.g. payment.retrieve")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only show success, failure or error")
	cmd.Flags().StringVar(&filter.ConversationID, "conversation-id", "", "Only show this conversation")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "Maximum number of entries")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show entries newer than this, e.g. 24h")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
