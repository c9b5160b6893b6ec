package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lunchbot/internal/configuration"
	"lunchbot/internal/logging"
	"lunchbot/internal/storage"
	"lunchbot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, backend, path string) string {
	t.Helper()
	dir := t.TempDir()
	base := "app:\n  profile: test\n  log-level: error\n"
	profile := "storage:\n  backend: " + backend + "\n  path: " + path + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application.yml"), []byte(base), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application-test.yml"), []byte(profile), 0o600))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(configuration.ConfigDirEnv, "")
	t.Setenv(configuration.ProfileEnv, "")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInitCommand_WritesEmptySnapshotOnce(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "restaurants.json")
	dir := writeConfig(t, "json", snapshot)

	out, err := execute(t, "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized empty json snapshot")

	raw, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	_, err = execute(t, "--config-dir", dir, "init")
	assert.ErrorIs(t, err, storage.ErrSnapshotExists)
}

func TestImportCommand_IntoWAL(t *testing.T) {
	walDir := filepath.Join(t.TempDir(), "wal")
	dir := writeConfig(t, "wal", walDir)

	source := filepath.Join(t.TempDir(), "restaurants.json")
	require.NoError(t, os.WriteFile(source, []byte(`[{"name":"Pizza","weight":2},{"name":"Sushi","weight":0}]`), 0o600))

	out, err := execute(t, "--config-dir", dir, "import", source)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 restaurants into wal snapshot")

	store, err := storage.OpenWALStore(walDir, false)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Restaurant{{Name: "Pizza", Weight: 2}, {Name: "Sushi", Weight: 0}}, records)
}

func TestImportCommand_RejectsDuplicates(t *testing.T) {
	dir := writeConfig(t, "json", filepath.Join(t.TempDir(), "restaurants.json"))
	source := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(source, []byte(`[{"name":"A","weight":0},{"name":"A","weight":1}]`), 0o600))

	_, err := execute(t, "--config-dir", dir, "import", source)
	assert.ErrorIs(t, err, storage.ErrSnapshotMalformed)
}

func TestNewServices_MissingSnapshotIsFatal(t *testing.T) {
	dir := writeConfig(t, "json", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv(configuration.ConfigDirEnv, dir)
	t.Setenv(configuration.ProfileEnv, "")

	cfg, err := configuration.Load()
	require.NoError(t, err)

	_, err = NewServices(cfg)
	assert.ErrorIs(t, err, storage.ErrSnapshotMissing)
}

func TestServeCommand_RequiresSlackTokens(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "restaurants.json")
	dir := writeConfig(t, "json", snapshot)

	_, err := execute(t, "--config-dir", dir, "serve")
	assert.ErrorContains(t, err, "slack.bot-token")
}

func TestNewServices_LogsRegistryLoadOnce(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "restaurants.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(`[{"name":"Pizza","weight":1}]`), 0o600))
	dir := writeConfig(t, "json", snapshot)
	t.Setenv(configuration.ConfigDirEnv, dir)
	t.Setenv(configuration.ProfileEnv, "")

	cfg, err := configuration.Load()
	require.NoError(t, err)

	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(logging.NewPrettyHandler(&logs, &logging.Options{Level: slog.LevelDebug, NoColor: true})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	svc, err := NewServices(cfg)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 1, strings.Count(logs.String(), "registry loaded"))
	assert.Equal(t, 1, svc.Registry.Len())
}
