// Package config loads runtime configuration for the ZivoHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, after loading an optional .env file from the working
//     directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # Environment
//
//	ZIVOHUB_SUPABASE_URL        project URL (EXPO_PUBLIC_SUPABASE_URL also accepted)
//	ZIVOHUB_SUPABASE_ANON_KEY   public anon key (EXPO_PUBLIC_SUPABASE_ANON_KEY also accepted)
//	ZIVOHUB_DATABASE_URL        optional direct PostgreSQL DSN for lesson/homework data
//	ZIVOHUB_REQUEST_TIMEOUT     e.g. "30s"
//	ZIVOHUB_ONLINE_CHECK_INTERVAL
//	ZIVOHUB_RESEND_COOLDOWN     seconds
//	ZIVOHUB_LANGUAGE            en | sn | nd
//	ZIVOHUB_LOG_LEVEL           debug | info | warn | error
//	ZIVOHUB_S3_ENDPOINT, ZIVOHUB_S3_REGION, ZIVOHUB_S3_BUCKET,
//	ZIVOHUB_S3_ACCESS_KEY, ZIVOHUB_S3_SECRET_KEY
//
// Supported flags
//
//	-u string   project URL
//	-k string   anon key
//	-d string   database URL
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-r int      resend cooldown (seconds)
//	-l string   language
//	-log-level string
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Absent keys leave values as they are:
//
//	{
//	  "supabase_url": "https://abc.supabase.co",
//	  "anon_key": "eyJ...",
//	  "request_timeout": "20s",
//	  "online_check_interval": "3s",
//	  "resend_cooldown": 60,
//	  "language": "sn",
//	  "s3": {"endpoint": "http://127.0.0.1:9000", "region": "us-east-1", "bucket": "homework"}
//	}
package config
