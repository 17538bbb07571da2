package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zivohub/internal/flagx"
	"github.com/dmitrijs2005/zivohub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero".
type JsonConfig struct {
	SupabaseURL         string          `json:"supabase_url"`
	AnonKey             string          `json:"anon_key"`
	DatabaseURL         string          `json:"database_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ResendCooldown      *int            `json:"resend_cooldown"`
	Language            string          `json:"language"`
	LogLevel            string          `json:"log_level"`
	S3                  *JsonS3Config   `json:"s3"`
}

// JsonS3Config is the attachment storage block of JsonConfig.
type JsonS3Config struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays cfg with the JSON file given by -c/-config in args.
// No flag means no change.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.SupabaseURL, jc.SupabaseURL)
	setIf(&cfg.AnonKey, jc.AnonKey)
	setIf(&cfg.DatabaseURL, jc.DatabaseURL)
	setIf(&cfg.Language, jc.Language)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.ResendCooldown != nil {
		cfg.ResendCooldown = *jc.ResendCooldown
	}
	if s := jc.S3; s != nil {
		setIf(&cfg.S3Endpoint, s.Endpoint)
		setIf(&cfg.S3Region, s.Region)
		setIf(&cfg.S3Bucket, s.Bucket)
		setIf(&cfg.S3AccessKey, s.AccessKey)
		setIf(&cfg.S3SecretKey, s.SecretKey)
	}
	return nil
}
