package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFiles are loaded in order; existing variables are never overwritten.
var dotEnvFiles = []string{".env"}

func loadDotEnv() {
	for _, f := range dotEnvFiles {
		// a missing file is fine
		_ = godotenv.Load(f)
	}
}

// lookup returns the first non-empty value among keys.
func lookup(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// parseEnv overlays cfg with environment variables. Unset variables leave
// values untouched.
func parseEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	strs := []struct {
		dst  *string
		keys []string
	}{
		{&cfg.SupabaseURL, []string{"ZIVOHUB_SUPABASE_URL", "EXPO_PUBLIC_SUPABASE_URL"}},
		{&cfg.AnonKey, []string{"ZIVOHUB_SUPABASE_ANON_KEY", "EXPO_PUBLIC_SUPABASE_ANON_KEY"}},
		{&cfg.DatabaseURL, []string{"ZIVOHUB_DATABASE_URL"}},
		{&cfg.Language, []string{"ZIVOHUB_LANGUAGE"}},
		{&cfg.LogLevel, []string{"ZIVOHUB_LOG_LEVEL"}},
		{&cfg.S3Endpoint, []string{"ZIVOHUB_S3_ENDPOINT"}},
		{&cfg.S3Region, []string{"ZIVOHUB_S3_REGION"}},
		{&cfg.S3Bucket, []string{"ZIVOHUB_S3_BUCKET"}},
		{&cfg.S3AccessKey, []string{"ZIVOHUB_S3_ACCESS_KEY"}},
		{&cfg.S3SecretKey, []string{"ZIVOHUB_S3_SECRET_KEY"}},
	}
	for _, s := range strs {
		if v := lookup(getenv, s.keys...); v != "" {
			*s.dst = v
		}
	}

	durs := []struct {
		dst *time.Duration
		key string
	}{
		{&cfg.RequestTimeout, "ZIVOHUB_REQUEST_TIMEOUT"},
		{&cfg.OnlineCheckInterval, "ZIVOHUB_ONLINE_CHECK_INTERVAL"},
	}
	for _, d := range durs {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, d.key, v)
		}
		*d.dst = parsed
	}

	if v := getenv("ZIVOHUB_RESEND_COOLDOWN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ZIVOHUB_RESEND_COOLDOWN=%q", ErrInvalidValue, v)
		}
		cfg.ResendCooldown = n
	}
	return nil
}
