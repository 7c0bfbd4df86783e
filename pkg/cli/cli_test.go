package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/getmockd/stubservice/pkg/config"
	"github.com/rogpeppe/go-internal/testscript"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// TestMain lets testscript run the CLI in-process as the "stubservice" command.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"stubservice": Main,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".xdg"))
			return nil
		},
	})
}

// isolate moves the test into an empty working directory with no global
// config and no stubservice environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".xdg"))
	t.Setenv("HOME", dir)
	for _, k := range []string{
		config.EnvPort, config.EnvStubDir, config.EnvServerPort, config.EnvRuntime,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvWatch,
		config.EnvConfinePaths, config.EnvConfig,
	} {
		t.Setenv(k, "")
	}
	return dir
}

// resetFlags restores every flag to its default so commands can run more
// than once per process.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		c.PersistentFlags().VisitAll(reset)
		c.Flags().VisitAll(reset)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return out.String(), err
}
