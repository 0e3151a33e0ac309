package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Currency = "EUR"
	cfg.Kinds.Expense = []string{"out"}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, cfg.DateFormat, got.DateFormat)
	assert.Equal(t, []string{"out"}, got.Kinds.Expense)
	assert.Equal(t, cfg.Kinds.Income, got.Kinds.Income)
	assert.Equal(t, cfg.Categories, got.Categories)
	assert.Equal(t, cfg.Log.Level, got.Log.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "元", cfg.Currency)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []model.Kind{model.KindIncome, "收入"}, cfg.IncomeKinds())
	assert.Equal(t, []model.Kind{model.KindExpense, "支出"}, cfg.ExpenseKinds())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Len(t, cfg.ExpenseKinds(), 2)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("kinds: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvCurrency, "CHF")
	t.Setenv(EnvLogLevel, "")

	cfg, err := LoadOrDefault(FileName)
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.Currency)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadOrDefault_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// Register restoration of the variable, then clear it for godotenv.
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TALLY_LOG_LEVEL=debug\n"), 0o644))
	require.NoError(t, Save(filepath.Join(dir, FileName), Default()))

	cfg, err := LoadOrDefault(FileName)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvCurrency: "", EnvLogLevel: "debug"}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "", cfg.Currency, "explicit empty currency is honored")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: 元")
	assert.Contains(t, contents, "date_format:")
	assert.Contains(t, contents, "level: warn")
	assert.Contains(t, contents, "- 支出")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
