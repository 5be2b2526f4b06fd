package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/giasu/internal/advisor"
	"github.com/abhisek/giasu/internal/llm"
	"github.com/abhisek/giasu/internal/matching"
	"github.com/abhisek/giasu/internal/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend universities for a user's latest preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		limit, _ := cmd.Flags().GetInt("limit")
		year, _ := cmd.Flags().GetInt("year")
		explain, _ := cmd.Flags().GetBool("explain")
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// The advisor is optional; recommendations print without it.
		var adv *advisor.Advisor
		if explain {
			provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo(), cliLog)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Advice will be unavailable.")
			} else {
				adv = advisor.New(provider, advisor.DefaultConfig())
			}
		}

		svc := newService(s, adv)
		rec, err := svc.RecommendForUser(ctx, userID, matching.Options{Limit: limit, Year: year})
		if err != nil {
			return err
		}

		r := report.Recommendations{Preference: rec.Preference, Run: rec.Run, Skipped: rec.Skipped}
		if adv != nil && len(rec.Run.Recommendations) > 0 {
			advice, err := svc.Explain(ctx, rec)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Advice unavailable:", err)
			}
			r.Advice = advice
		}
		return report.WriteRecommendations(cmd.OutOrStdout(), r)
	},
}

func init() {
	recommendCmd.Flags().Int64("user", 0, "User ID")
	recommendCmd.Flags().IntP("limit", "n", 0, "Maximum number of universities (default GIASU_RECOMMEND_LIMIT or 5)")
	recommendCmd.Flags().Int("year", 0, "Admission year to compare against (default: latest per university)")
	recommendCmd.Flags().Bool("explain", false, "Ask the configured LLM to explain the ranking")
	_ = recommendCmd.MarkFlagRequired("user")
}
