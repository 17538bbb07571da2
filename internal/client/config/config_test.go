package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zivohub.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 60, c.ResendCooldown)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Empty(t, c.SupabaseURL)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
	assert.ErrorIs(t, cfg.Validate(), ErrMissingURL)
}

func TestLoad_Env(t *testing.T) {
	cfg, err := Load(nil, env(map[string]string{
		"EXPO_PUBLIC_SUPABASE_URL":      "https://expo.supabase.co",
		"ZIVOHUB_SUPABASE_ANON_KEY":     "anon",
		"EXPO_PUBLIC_SUPABASE_ANON_KEY": "ignored",
		"ZIVOHUB_REQUEST_TIMEOUT":       "1500ms",
		"ZIVOHUB_RESEND_COOLDOWN":       "45",
		"ZIVOHUB_LANGUAGE":              "sn",
		"ZIVOHUB_S3_BUCKET":             "homework",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://expo.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon", cfg.AnonKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 45, cfg.ResendCooldown)
	assert.Equal(t, "sn", cfg.Language)
	assert.True(t, cfg.AttachmentsEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvZivoHubWinsOverExpo(t *testing.T) {
	cfg, err := Load(nil, env(map[string]string{
		"ZIVOHUB_SUPABASE_URL":     "https://zivo.supabase.co",
		"EXPO_PUBLIC_SUPABASE_URL": "https://expo.supabase.co",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://zivo.supabase.co", cfg.SupabaseURL)
}

func TestLoad_EnvErrors(t *testing.T) {
	_, err := Load(nil, env(map[string]string{"ZIVOHUB_ONLINE_CHECK_INTERVAL": "soon"}))
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Load(nil, env(map[string]string{"ZIVOHUB_RESEND_COOLDOWN": "a minute"}))
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"supabase_url":          "https://json.supabase.co",
		"anon_key":              "json-key",
		"online_check_interval": "10s",
		"request_timeout":       5000000000,
		"resend_cooldown":       30,
		"s3":                    map[string]any{"bucket": "json-bucket", "endpoint": "http://127.0.0.1:9000"},
	})

	cfg, err := Load(
		[]string{"-c", path, "-u", "https://flag.supabase.co", "-i", "7", "positional"},
		env(map[string]string{
			"ZIVOHUB_SUPABASE_URL": "https://env.supabase.co",
			"ZIVOHUB_LANGUAGE":     "nd",
			"ZIVOHUB_S3_REGION":    "af-south-1",
		}),
	)
	require.NoError(t, err)

	want := &Config{
		SupabaseURL:         "https://flag.supabase.co",
		AnonKey:             "json-key",
		RequestTimeout:      5 * time.Second,
		OnlineCheckInterval: 7 * time.Second,
		ResendCooldown:      30,
		Language:            "nd",
		LogLevel:            "info",
		S3Endpoint:          "http://127.0.0.1:9000",
		S3Region:            "af-south-1",
		S3Bucket:            "json-bucket",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_FlagErrors(t *testing.T) {
	_, err := Load([]string{"-i", "abc"}, nil)
	require.Error(t, err)
}

func TestLoad_JsonErrors(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Load([]string{"-config", bad}, nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{SupabaseURL: "https://x.supabase.co", AnonKey: "k"}
		c.LoadDefaults()
		return c
	}
	require.NoError(t, base().Validate())

	c := base()
	c.AnonKey = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingAnonKey)

	c = base()
	c.ResendCooldown = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)

	c = base()
	c.RequestTimeout = -time.Second
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ZIVOHUB_TEST_DOTENV_A=from-file\nZIVOHUB_TEST_DOTENV_B=from-file\n"), 0o600))

	old := dotEnvFiles
	dotEnvFiles = []string{path, filepath.Join(dir, "missing.env")}
	t.Cleanup(func() {
		dotEnvFiles = old
		_ = os.Unsetenv("ZIVOHUB_TEST_DOTENV_A")
	})
	t.Setenv("ZIVOHUB_TEST_DOTENV_B", "from-env")

	loadDotEnv()

	assert.Equal(t, "from-file", os.Getenv("ZIVOHUB_TEST_DOTENV_A"))
	assert.Equal(t, "from-env", os.Getenv("ZIVOHUB_TEST_DOTENV_B"))
}
