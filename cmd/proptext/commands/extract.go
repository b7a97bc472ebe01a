package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/camaradados/proptext/adapter/pdf"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Download and clean the full text of pending propositions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			limit, _       = cmd.Flags().GetInt("limit")
			retryFailed, _ = cmd.Flags().GetBool("retry-failed")
			watch, _       = cmd.Flags().GetBool("watch")
			interval, _    = cmd.Flags().GetDuration("interval")
		)

		svc, closeAll, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeAll()

		if retryFailed {
			n, err := svc.RequeueFailed(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "requeued %d failed propositions\n", n)
		}

		if watch {
			wait := svc.ProcessPending(cmd.Context(), interval, limit)
			<-cmd.Context().Done()
			wait()
			return nil
		}

		stats, err := svc.ExtractTexts(cmd.Context(), limit)
		printf(cmd, "extracted %d, no text %d, failed %d (%d from cache)\n",
			stats.Extracted, stats.NoText, stats.Failed, stats.Cached)

		return err
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean <file.pdf>",
	Short: "Print the cleaned text of a local PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("remove-annex") {
			cfg.Cleaning.RemoveFromAnnex, _ = cmd.Flags().GetBool("remove-annex")
		}

		cleaner, err := newCleaner()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := pdf.Decode(f)
		if err != nil {
			return err
		}

		text, err := cleaner.Clean(doc)
		if err != nil {
			return err
		}

		printf(cmd, "%s\n", text)
		return nil
	},
}

func init() {
	extractCmd.Flags().IntP("limit", "l", 0, "maximum number of propositions to process, 0 for all")
	extractCmd.Flags().Bool("retry-failed", false, "requeue failed propositions before extracting")
	extractCmd.Flags().Bool("watch", false, "keep extracting newly imported propositions until interrupted")
	extractCmd.Flags().Duration("interval", time.Minute, "how often to look for pending propositions in watch mode")

	cleanCmd.Flags().Bool("remove-annex", false, "drop the annex and every page after it")
}
