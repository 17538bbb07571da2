package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/flagx"
)

var knownFlags = []string{"u", "k", "d", "t", "i", "r", "l", "log-level"}

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in knownFlags are considered (see flagx.FilterArgs),
// so -c/-config and anything else on the command line is left alone.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.SupabaseURL, "u", cfg.SupabaseURL, "project URL")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "anon key")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "direct database URL")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.IntVar(&cfg.ResendCooldown, "r", cfg.ResendCooldown, "resend cooldown (in seconds)")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "language (en, sn, nd)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	// only touch durations that were given, so sub-second values from env/JSON survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
