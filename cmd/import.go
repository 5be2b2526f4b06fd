package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/giasu/internal/app"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import tests, the university catalog or user preferences",
}

// importRunner opens the store and the document named by args[0] and
// hands both to do, which returns a one-line summary.
func importRunner(do func(ctx context.Context, svc *app.Service, r io.Reader) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		summary, err := do(cmd.Context(), newService(s, nil), in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	}
}

var importTestsCmd = &cobra.Command{
	Use:   "tests <file>",
	Short: "Import test definitions with their questions",
	Args:  cobra.ExactArgs(1),
	RunE: importRunner(func(ctx context.Context, svc *app.Service, r io.Reader) (string, error) {
		defs, err := svc.ImportTests(ctx, r)
		if err != nil {
			return "", err
		}
		questions := 0
		for _, d := range defs {
			questions += len(d.Questions)
		}
		return fmt.Sprintf("Imported %d test(s) with %d question(s).", len(defs), questions), nil
	}),
}

var importCatalogCmd = &cobra.Command{
	Use:   "catalog <file>",
	Short: "Import universities and their yearly admission scores",
	Args:  cobra.ExactArgs(1),
	RunE: importRunner(func(ctx context.Context, svc *app.Service, r io.Reader) (string, error) {
		c, err := svc.ImportCatalog(ctx, r)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Imported %d universities with %d score record(s).", len(c.Universities), len(c.Scores)), nil
	}),
}

var importPrefsCmd = &cobra.Command{
	Use:   "prefs <file>",
	Short: "Import user preferences",
	Args:  cobra.ExactArgs(1),
	RunE: importRunner(func(ctx context.Context, svc *app.Service, r io.Reader) (string, error) {
		prefs, err := svc.ImportPreferences(ctx, r)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Imported %d preference(s).", len(prefs)), nil
	}),
}

func init() {
	importCmd.AddCommand(importTestsCmd)
	importCmd.AddCommand(importCatalogCmd)
	importCmd.AddCommand(importPrefsCmd)
}
