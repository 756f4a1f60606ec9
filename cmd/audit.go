package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/tally/pkg/audit"
	"thoreinstein.com/tally/pkg/bootstrap"
)

// auditCmd queries the dispatched-command audit database.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recently dispatched commands",
	Long: `Show the audit trail of commands dispatched in interactive sessions.

Every input the dispatch loop executes is recorded with its session id,
duration, and outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuditCommand()
	},
}

var auditLimit int

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "Maximum number of records to show")
}

func runAuditCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger, closeLog := bootstrap.NewLogger(cfg, verbose)
	defer func() { _ = closeLog() }()

	log, err := audit.Open(cfg.Audit.DatabasePath, logger)
	if err != nil {
		return errors.Wrap(err, "failed to open audit database")
	}
	defer func() { _ = log.Close() }()

	records, err := log.Recent(auditLimit)
	if err != nil {
		return errors.Wrap(err, "failed to query audit log")
	}

	if len(records) == 0 {
		fmt.Println("No audit records found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tSESSION\tINPUT\tDURATION\tOK")
	for _, r := range records {
		ok := "yes"
		if !r.OK {
			ok = "no"
		}
		fmt.Fprintf(w, "%s\t%.8s\t%s\t%s\t%s\n",
			r.Started.Local().Format("2006-01-02 15:04:05"), r.Session, r.Input, r.Duration, ok)
	}
	w.Flush()

	return nil
}
