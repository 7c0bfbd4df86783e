package cli

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func runDoctorJSON(t *testing.T, args ...string) doctorOutput {
	t.Helper()
	out, err := execute(t, append([]string{"doctor", "--json"}, args...)...)
	require.NoError(t, err)
	var got doctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func findCheck(checks []doctorCheck, name string) (doctorCheck, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return doctorCheck{}, false
}

func TestDoctor_AllPassed(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "stubs", "users.json"), `{}`)
	writeFile(t, filepath.Join(dir, "stubs", "postresp", "users.json"), `{}`)
	port := freePort(t)

	got := runDoctorJSON(t, "-p", strconv.Itoa(port))
	assert.True(t, got.AllPassed)

	c, ok := findCheck(got.Checks, "stub_dir")
	require.True(t, ok)
	assert.Equal(t, checkOK, c.Status)
	assert.Contains(t, c.Detail, "1 fixtures, 1 POST responses")
	assert.True(t, strings.HasPrefix(c.Detail, "stubs -> "), c.Detail)

	c, ok = findCheck(got.Checks, "port_"+strconv.Itoa(port))
	require.True(t, ok)
	assert.Equal(t, "available", c.Detail)

	_, ok = findCheck(got.Checks, "postresp_dir")
	assert.False(t, ok)
}

func TestDoctor_MissingStubDir(t *testing.T) {
	isolate(t)

	got := runDoctorJSON(t, "-p", strconv.Itoa(freePort(t)))
	assert.False(t, got.AllPassed)
	c, ok := findCheck(got.Checks, "stub_dir")
	require.True(t, ok)
	assert.Equal(t, checkFail, c.Status)
}

func TestDoctor_PortInUse(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stubs"), 0o755))

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	got := runDoctorJSON(t, "-p", strconv.Itoa(port))
	assert.False(t, got.AllPassed)
	c, ok := findCheck(got.Checks, "port_"+strconv.Itoa(port))
	require.True(t, ok)
	assert.Equal(t, checkFail, c.Status)

	c, ok = findCheck(got.Checks, "postresp_dir")
	require.True(t, ok)
	assert.Equal(t, checkInfo, c.Status)
}

func TestDoctor_BadConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".stubservicerc.yaml"), "server_port: [oops\n")

	out, err := execute(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ config")
	assert.Contains(t, out, "Some checks failed")
}

func TestDoctor_InvalidValues(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stubs"), 0o755))
	writeFile(t, filepath.Join(dir, ".stubservicerc.yaml"), "logging:\n  format: xml\n")

	got := runDoctorJSON(t, "-p", strconv.Itoa(freePort(t)))
	assert.False(t, got.AllPassed)
	c, ok := findCheck(got.Checks, "config_values")
	require.True(t, ok)
	assert.Contains(t, c.Detail, "logging.format")
}

func TestDescribeStubDir(t *testing.T) {
	assert.Equal(t, "stubs -> /work/stubs", describeStubDir("stubs", "/work/stubs"))
	abs, err := filepath.Abs("mocks")
	require.NoError(t, err)
	assert.Equal(t, abs, describeStubDir(abs, abs))
}
