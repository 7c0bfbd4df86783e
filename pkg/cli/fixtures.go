package cli

import (
	"fmt"
	"path"

	"github.com/getmockd/stubservice/pkg/cli/internal/output"
	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/getmockd/stubservice/pkg/stub"
	"github.com/spf13/cobra"
)

var fixturesPattern string

var fixturesCmd = &cobra.Command{
	Use:     "fixtures",
	Aliases: []string{"ls"},
	Short:   "List the fixtures under the stub directory",
	Long: `List the JSON fixtures under the stub directory together with the route
each one serves.

Examples:
  # Every fixture
  stubservice fixtures

  # Only fixtures below users/
  stubservice fixtures --pattern 'users/**/*.json'

  # Canned POST responses as JSON
  stubservice fixtures --pattern 'postresp/**' --json`,
	Args: cobra.NoArgs,
	RunE: runFixtures,
}

func init() {
	fixturesCmd.Flags().StringVar(&fixturesPattern, "pattern", fixture.DefaultPattern, "Glob pattern relative to the stub directory")
	rootCmd.AddCommand(fixturesCmd)
}

// fixtureRow is the --json form of one listed fixture.
type fixtureRow struct {
	fixture.Fixture
	Route string `json:"route"`
}

func runFixtures(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	root, err := fixture.NewResolver(cfg.StubDir).Root()
	if err != nil {
		return err
	}

	found, err := fixture.List(root, fixturesPattern)
	if err != nil {
		return fmt.Errorf("listing %s: %w", root, err)
	}

	rows := make([]fixtureRow, 0, len(found))
	for _, f := range found {
		rows = append(rows, fixtureRow{Fixture: f, Route: fixtureRoute(f)})
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return output.JSON(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No fixtures found in %s\n", root)
		return nil
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "PATH\tKIND\tROUTE\tSIZE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Path, r.Kind, r.Route, r.Size)
	}
	return tw.Flush()
}

// fixtureRoute describes the request a fixture answers.
func fixtureRoute(f fixture.Fixture) string {
	p := path.Join(stub.Prefix, f.SubPath)
	if f.Kind == fixture.KindResponse {
		return "POST " + p
	}
	return "GET|POST " + p
}
