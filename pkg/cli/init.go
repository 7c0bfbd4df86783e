package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/getmockd/stubservice/pkg/config"
	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/spf13/cobra"
)

// sampleFixture is written as <stub_dir>/hello.json by init.
const sampleFixture = `{
  "message": "Hello from stubservice"
}
`

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .stubservicerc.yaml and an empty stub directory",
	Long: `Create a .stubservicerc.yaml in the current directory and the stub
directory it points at, including its postresp/ folder and a sample fixture
served at GET /stubService/hello.

Examples:
  # Defaults: ./stubs on port 3000
  stubservice init

  # Custom directory and port, replacing an existing file
  stubservice init --stub-dir mocks -p 8080 --force

  # Prompt for the values
  stubservice init -i`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	target := config.LocalConfigFileNames[0]
	if configFile != "" {
		target = configFile
	}

	if _, err := os.Stat(target); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}

	dir, listenPort := stubDir, port
	if initInteractive {
		var err error
		dir, listenPort, err = promptInit(dir, listenPort)
		if err != nil {
			return err
		}
	}

	if err := config.SaveFile(target, &config.Overrides{
		StubDir:    config.String(dir),
		ServerPort: config.Int(listenPort),
	}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, fixture.ResponseDir), 0o755); err != nil {
		return fmt.Errorf("creating stub directory: %w", err)
	}
	sample := filepath.Join(dir, "hello"+fixture.Extension)
	if !fixture.Exists(sample) {
		if err := fixture.Write(sample, []byte(sampleFixture)); err != nil {
			return fmt.Errorf("writing sample fixture: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created %s\n", target)
	fmt.Fprintf(w, "Stub directory: %s\n", dir)
	fmt.Fprintf(w, "\nStart the server with:\n  stubservice serve\n")
	fmt.Fprintf(w, "Then try:\n  curl http://localhost:%d/stubService/hello\n", listenPort)
	return nil
}

// promptInit asks for the stub directory and port, starting from the given
// values.
func promptInit(dir string, listenPort int) (string, int, error) {
	portStr := strconv.Itoa(listenPort)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Where should fixtures live?").
				Placeholder(config.DefaultStubDir).
				Value(&dir).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("stub directory is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Which port should the server listen on?").
				Value(&portStr).
				Validate(func(s string) error {
					p, err := strconv.Atoi(s)
					if err != nil || p < 1 || p > 65535 {
						return errors.New("port must be between 1 and 65535")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", 0, err
	}

	p, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return dir, p, nil
}
