package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func noEnv(string) string { return "" }

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "stub_dir: fixtures\nconfine_paths: false\nlogging:\n  level: debug\n")

	o, err := LoadFile(path)
	require.NoError(t, err)

	require.NotNil(t, o.StubDir)
	assert.Equal(t, "fixtures", *o.StubDir)
	require.NotNil(t, o.ConfinePaths)
	assert.False(t, *o.ConfinePaths)
	assert.Nil(t, o.ServerPort)
	require.NotNil(t, o.Logging)
	assert.Equal(t, "debug", *o.Logging.Level)
	assert.Nil(t, o.Logging.Format)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "server_port: [not, a, port\n")

	_, err := LoadFile(path)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, path, fileErr.Path)
	assert.Contains(t, err.Error(), path+": ")
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stubservicerc.yaml")

	require.NoError(t, SaveFile(path, &Overrides{StubDir: String("mocks"), ServerPort: Int(4100)}))

	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mocks", *o.StubDir)
	assert.Equal(t, 4100, *o.ServerPort)
	assert.Nil(t, o.Env)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	globalDir := t.TempDir()

	writeFile(t, filepath.Join(globalDir, GlobalConfigDir, "config.yaml"),
		"stub_dir: global-stubs\nserver_port: 3100\nenv: staging\n")
	writeFile(t, filepath.Join(dir, ".stubservicerc.yaml"),
		"server_port: 3200\nlogging:\n  format: json\n")
	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "logging:\n  level: warn\n")

	env := map[string]string{EnvLogLevel: "error"}

	cfg, err := Load(LoadOptions{
		Dir:        dir,
		GlobalDir:  globalDir,
		ConfigFile: explicit,
		SkipDotEnv: true,
		Getenv:     func(k string) string { return env[k] },
		Flags:      &Overrides{ServerPort: Int(3300)},
	})
	require.NoError(t, err)

	assert.Equal(t, "global-stubs", cfg.StubDir)
	assert.Equal(t, SourceGlobal, cfg.Source("stub_dir"))
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 3300, cfg.ServerPort)
	assert.Equal(t, SourceFlag, cfg.Source("server_port"))
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, SourceLocal, cfg.Source("logging.format"))
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, SourceEnv, cfg.Source("logging.level"))
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(LoadOptions{
		Dir:        t.TempDir(),
		GlobalDir:  t.TempDir(),
		SkipDotEnv: true,
		Getenv:     noEnv,
	})
	require.NoError(t, err)

	assert.Equal(t, Default().StubDir, cfg.StubDir)
	assert.Equal(t, Default().ServerPort, cfg.ServerPort)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{
		Dir:        t.TempDir(),
		GlobalDir:  t.TempDir(),
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		SkipDotEnv: true,
		Getenv:     noEnv,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_DoesNotValidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".stubservicerc.yaml"), "server_port: 99999\n")

	cfg, err := Load(LoadOptions{Dir: dir, GlobalDir: t.TempDir(), SkipDotEnv: true, Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, 99999, cfg.ServerPort)

	var verr *ValidationError
	assert.ErrorAs(t, cfg.Validate(), &verr)
}

func TestLoad_DotEnvFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "STUBSERVICE_STUB_DIR=dotenv-stubs\n")
	t.Setenv(EnvStubDir, "")
	require.NoError(t, os.Unsetenv(EnvStubDir))

	cfg, err := Load(LoadOptions{Dir: dir, GlobalDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "dotenv-stubs", cfg.StubDir)
	assert.Equal(t, SourceEnv, cfg.Source("stub_dir"))
}

func TestLoad_BrokenLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".stubservicerc.yml"), "stub_dir: [oops\n")

	_, err := Load(LoadOptions{Dir: dir, GlobalDir: t.TempDir(), SkipDotEnv: true, Getenv: noEnv})

	var fileErr *FileError
	assert.ErrorAs(t, err, &fileErr)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "STUBSERVICE_STUB_DIR=from-dotenv\nSTUBSERVICE_LOG_FORMAT=json\n")

	t.Setenv(EnvStubDir, "from-shell")
	t.Setenv(EnvLogFormat, "")
	require.NoError(t, os.Unsetenv(EnvLogFormat))

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-shell", os.Getenv(EnvStubDir))
	assert.Equal(t, "json", os.Getenv(EnvLogFormat))
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
