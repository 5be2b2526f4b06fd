package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/giasu/internal/report"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List a user's recorded test results",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		h, err := newService(s, nil).Results(cmd.Context(), userID)
		if err != nil {
			return err
		}
		return report.WriteResults(cmd.OutOrStdout(), report.History{
			UserID:   h.UserID,
			Results:  h.Results,
			Summary:  h.Summary,
			Progress: h.Progress,
		})
	},
}

func init() {
	resultsCmd.Flags().Int64("user", 0, "User ID")
	_ = resultsCmd.MarkFlagRequired("user")
}
