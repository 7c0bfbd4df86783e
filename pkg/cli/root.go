package cli

import (
	"fmt"
	"os"

	"github.com/getmockd/stubservice/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configFile   string
	stubDir      string
	port         int
	runtimeEnv   string
	logLevel     string
	logFormat    string
	watch        bool
	confinePaths bool
	jsonOutput   bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stubservice",
	Short: "stubservice serves JSON fixtures from disk and captures POST bodies",
	Long: `stubservice is a mock HTTP server for frontend development and integration tests.

GET /stubService/<dir>/<name> returns <stub_dir>/<dir>/<name>.json.
POST /stubService/<dir>/<name> writes the request body to
<stub_dir>/<dir>/<name>.json and replies with <stub_dir>/<dir>/postresp/<name>.json
when it exists, or a generic success payload otherwise.

Configuration is read from ~/.config/stubservice/config.yaml, ./.stubservicerc.yaml,
the file given by --config, STUBSERVICE_* environment variables (and ./.env) and
flags, later sources winning.

Running stubservice without a subcommand starts the server.`,
	Args:          cobra.NoArgs,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Execute runs the root command with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Config file (default: ./.stubservicerc.yaml)")
	pf.StringVar(&stubDir, "stub-dir", config.DefaultStubDir, "Directory holding the JSON fixtures")
	pf.IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	pf.StringVar(&runtimeEnv, "env", config.DefaultEnv, "Runtime environment; when set, PORT overrides --port")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	pf.BoolVar(&watch, "watch", false, "Log fixture changes while serving")
	pf.BoolVar(&confinePaths, "confine-paths", false, "Reject requests that resolve outside the stub directory")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// flagOverrides returns the config values given explicitly on the command
// line. Flags left at their defaults do not override lower layers.
func flagOverrides(cmd *cobra.Command) *config.Overrides {
	flags := cmd.Flags()
	o := &config.Overrides{}
	if flags.Changed("stub-dir") {
		o.StubDir = config.String(stubDir)
	}
	if flags.Changed("port") {
		o.ServerPort = config.Int(port)
	}
	if flags.Changed("env") {
		o.Env = config.String(runtimeEnv)
	}
	if flags.Changed("watch") {
		o.Watch = config.Bool(watch)
	}
	if flags.Changed("confine-paths") {
		o.ConfinePaths = config.Bool(confinePaths)
	}
	if flags.Changed("log-level") || flags.Changed("log-format") {
		o.Logging = &config.LoggingOverrides{}
		if flags.Changed("log-level") {
			o.Logging.Level = config.String(logLevel)
		}
		if flags.Changed("log-format") {
			o.Logging.Format = config.String(logFormat)
		}
	}
	return o
}

// loadConfig builds the effective configuration for cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      flagOverrides(cmd),
	})
}
