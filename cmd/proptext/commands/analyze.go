package commands

import (
	"github.com/spf13/cobra"
)

var wordCloudCmd = &cobra.Command{
	Use:   "wordcloud",
	Short: "Count the words of extracted propositions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, closeAll, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeAll()

		n, err := svc.GenerateWordClouds(cmd.Context(), limit)
		if err != nil {
			return err
		}

		printf(cmd, "generated %d word clouds\n", n)
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize extracted propositions with a language model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, closeAll, err := newService(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer closeAll()

		n, err := svc.Summarize(cmd.Context(), limit)
		if err != nil {
			return err
		}

		printf(cmd, "saved %d summaries\n", n)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify extracted propositions into policy topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, closeAll, err := newService(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer closeAll()

		n, err := svc.ClassifyTopics(cmd.Context(), limit)
		if err != nil {
			return err
		}

		printf(cmd, "classified %d propositions\n", n)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{wordCloudCmd, summarizeCmd, classifyCmd} {
		c.Flags().IntP("limit", "l", 0, "maximum number of propositions to process, 0 for all")
	}
}
