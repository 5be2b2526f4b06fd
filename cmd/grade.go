package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/giasu/internal/catalog"
	"github.com/abhisek/giasu/internal/report"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <submissions.json>",
	Short: "Grade submissions and record the results",
	Long: "Grade every submission in the document against its stored test and record\n" +
		"the results. Repeating the latest attempt of a user at a test returns the\n" +
		"existing result instead of recording a new one.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		in, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		subs, err := catalog.DecodeSubmissions(in)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No submissions found.")
			return nil
		}

		attempts, err := newService(s, nil).GradeAll(cmd.Context(), subs)
		if err != nil {
			return fmt.Errorf("grade submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			results := make([]any, len(attempts))
			for i, a := range attempts {
				results[i] = a.Result
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		for _, a := range attempts {
			if err := report.WriteResult(out, a.Result, a.Created, a.InvalidChoices); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	gradeCmd.Flags().Bool("json", false, "Print results as JSON")
}
