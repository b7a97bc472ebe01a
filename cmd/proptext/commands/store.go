package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camaradados/proptext"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := proptext.Migrate(db); err != nil {
			return err
		}

		logger.Info("database migrated", zap.String("path", cfg.Database.Path))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import authors and propositions from an open data JSON export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()

		ds, err := proptext.LoadDataset(f)
		if err != nil {
			return err
		}

		svc, closeAll, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeAll()

		stats, err := svc.ImportDataset(cmd.Context(), ds)
		if err != nil {
			return err
		}

		printf(cmd, "imported %d authors and %d propositions (%d new)\n", stats.Authors, stats.Propositions, stats.New)
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("file", "f", "", "path to the propositions JSON export")
	_ = importCmd.MarkFlagRequired("file")
}
