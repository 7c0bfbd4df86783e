package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getmockd/stubservice/pkg/cli/internal/output"
	"github.com/getmockd/stubservice/pkg/cli/internal/ports"
	"github.com/getmockd/stubservice/pkg/config"
	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/getmockd/stubservice/pkg/server"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common setup issues",
	Long: `Check that the configuration loads with usable values, the stub
directory exists and the port is free (or already served by stubservice).`,
	Example: `  # Run all checks with the effective configuration
  stubservice doctor

  # Check another directory and port
  stubservice doctor --stub-dir mocks -p 8080`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Doctor check statuses.
const (
	checkOK   = "ok"
	checkFail = "fail"
	checkInfo = "info"
)

// doctorCheck holds the result of a single doctor check.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

type doctorOutput struct {
	Checks    []doctorCheck `json:"checks"`
	AllPassed bool          `json:"allPassed"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	var checks []doctorCheck

	cfg, err := loadConfig(cmd)
	if err != nil {
		checks = append(checks, doctorCheck{Name: "config", Status: checkFail, Detail: err.Error()})
		return printDoctor(cmd, checks)
	}
	checks = append(checks, doctorCheck{Name: "config", Status: checkOK, Detail: describeConfigFiles()})
	if err := cfg.Validate(); err != nil {
		checks = append(checks, doctorCheck{Name: "config_values", Status: checkFail, Detail: err.Error()})
	}

	checks = append(checks, checkPort(config.EffectivePort(cfg, os.Getenv)))
	checks = append(checks, checkStubDir(cfg)...)

	return printDoctor(cmd, checks)
}

func printDoctor(cmd *cobra.Command, checks []doctorCheck) error {
	allPassed := true
	for _, c := range checks {
		if c.Status == checkFail {
			allPassed = false
		}
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return output.JSON(w, doctorOutput{Checks: checks, AllPassed: allPassed})
	}

	fmt.Fprintln(w, "stubservice doctor")
	fmt.Fprintln(w, "==================")
	fmt.Fprintln(w)
	for _, c := range checks {
		switch c.Status {
		case checkOK:
			fmt.Fprintf(w, "  ✓ %s: %s\n", c.Name, c.Detail)
		case checkFail:
			fmt.Fprintf(w, "  ✗ %s: %s\n", c.Name, c.Detail)
		default:
			fmt.Fprintf(w, "  • %s: %s\n", c.Name, c.Detail)
		}
	}
	fmt.Fprintln(w)
	if allPassed {
		fmt.Fprintln(w, "All checks passed!")
	} else {
		fmt.Fprintln(w, "Some checks failed. See above for details.")
	}
	return nil
}

// describeConfigFiles lists the config files the loader would pick up.
func describeConfigFiles() string {
	var found []string
	if p := config.FindGlobalConfig(""); p != "" {
		found = append(found, p)
	}
	if wd, err := os.Getwd(); err == nil {
		if p := config.FindLocalConfig(wd); p != "" {
			found = append(found, filepath.Base(p))
		}
	}
	if configFile != "" {
		found = append(found, configFile)
	}
	if len(found) == 0 {
		return "defaults only"
	}
	return strings.Join(found, ", ")
}

func checkPort(port int) doctorCheck {
	name := fmt.Sprintf("port_%d", port)
	if ports.IsAvailable(port) {
		return doctorCheck{Name: name, Status: checkOK, Detail: "available"}
	}
	if stubserviceRunning(port) {
		return doctorCheck{Name: name, Status: checkInfo, Detail: "stubservice is already serving on this port"}
	}
	return doctorCheck{Name: name, Status: checkFail, Detail: "in use"}
}

// stubserviceRunning reports whether the health route answers on port.
func stubserviceRunning(port int) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d%s", port, server.HealthPath))
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func checkStubDir(cfg config.Config) []doctorCheck {
	resolver := fixture.NewResolver(cfg.StubDir)
	root, err := resolver.Root()
	if err != nil {
		return []doctorCheck{{Name: "stub_dir", Status: checkFail, Detail: err.Error()}}
	}

	found, err := fixture.List(root, fixture.DefaultPattern)
	if err != nil {
		return []doctorCheck{{Name: "stub_dir", Status: checkFail, Detail: err.Error()}}
	}

	var responses int
	for _, f := range found {
		if f.Kind == fixture.KindResponse {
			responses++
		}
	}
	checks := []doctorCheck{{
		Name:   "stub_dir",
		Status: checkOK,
		Detail: fmt.Sprintf("%s (%d fixtures, %d POST responses)", describeStubDir(resolver.StubDir(), root), len(found)-responses, responses),
	}}

	if info, err := os.Stat(filepath.Join(root, fixture.ResponseDir)); err != nil || !info.IsDir() {
		checks = append(checks, doctorCheck{
			Name:   "postresp_dir",
			Status: checkInfo,
			Detail: "not found; top-level POSTs reply with the default success payload",
		})
	}
	return checks
}

// describeStubDir shows the configured stub_dir and, when it is relative,
// the directory it resolves to from here.
func describeStubDir(configured, root string) string {
	if filepath.IsAbs(configured) {
		return root
	}
	return fmt.Sprintf("%s -> %s", configured, root)
}
