package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadSecretsFrom(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		secrets, err := LoadSecretsFrom(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		require.Equal(t, ProviderYahoo, secrets.Provider)
		require.Equal(t, 4, secrets.FetchConcurrency)
		require.Nil(t, secrets.Db)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "secrets.json", `{
			"provider": "alpaca",
			"alpaca": {"apiKey": "k", "apiSecret": "s"},
			"db": {"host": "localhost", "user": "postgres", "port": "5432", "password": "pw", "database": "prices"},
			"fetchConcurrency": 8
		}`)
		secrets, err := LoadSecretsFrom(path)
		require.NoError(t, err)
		require.Equal(t, ProviderAlpaca, secrets.Provider)
		require.Equal(t, 8, secrets.FetchConcurrency)
		require.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=prices sslmode=disable", secrets.Db.ToConnectionStr())
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "secrets.yaml", "provider: yahoo\nrequestsPerSecond: 2\n")
		secrets, err := LoadSecretsFrom(path)
		require.NoError(t, err)
		require.Equal(t, 2.0, secrets.RequestsPerSecond)
	})

	t.Run("yaml ses", func(t *testing.T) {
		path := writeFile(t, "secrets.yml", "ses:\n  region: us-east-1\n  fromEmail: screens@example.com\n  recipients:\n    - me@example.com\n")
		secrets, err := LoadSecretsFrom(path)
		require.NoError(t, err)
		require.Equal(t, &SESSecrets{
			Region:     "us-east-1",
			FromEmail:  "screens@example.com",
			Recipients: []string{"me@example.com"},
		}, secrets.SES)
	})

	t.Run("ses without sender", func(t *testing.T) {
		path := writeFile(t, "secrets.json", `{"ses": {"region": "us-east-1"}}`)
		_, err := LoadSecretsFrom(path)
		require.Error(t, err)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
		t.Setenv("ALPACA_API_KEY", "key")
		t.Setenv("ALPACA_API_SECRET", "secret")
		path := writeFile(t, "secrets.json", `{"provider": "alpaca"}`)
		secrets, err := LoadSecretsFrom(path)
		require.NoError(t, err)
		require.Equal(t, "postgres://u:p@db:5432/x", secrets.Db.ToConnectionStr())
		require.Equal(t, "key", secrets.Alpaca.ApiKey)
	})

	t.Run("alpaca without keys", func(t *testing.T) {
		path := writeFile(t, "secrets.json", `{"provider": "alpaca"}`)
		_, err := LoadSecretsFrom(path)
		require.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		path := writeFile(t, "secrets.json", `{"provider": "bloomberg"}`)
		_, err := LoadSecretsFrom(path)
		require.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := writeFile(t, "secrets.json", `{`)
		_, err := LoadSecretsFrom(path)
		require.Error(t, err)
	})
}
