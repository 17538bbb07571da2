package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/client/config"
	"github.com/dmitrijs2005/zivohub/internal/client/i18n"
	"github.com/dmitrijs2005/zivohub/internal/client/repositories/records"
	"github.com/dmitrijs2005/zivohub/internal/client/services"
	"github.com/dmitrijs2005/zivohub/internal/client/storage"
	"github.com/dmitrijs2005/zivohub/internal/clock"
	"github.com/dmitrijs2005/zivohub/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// Construction seams, replaced in tests.
var (
	openStore = func(ctx context.Context, c *config.Config) (client.DataStore, func(), error) {
		pool, err := records.Open(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return records.NewPostgresStore(pool, records.WithStatementTimeout(c.RequestTimeout)), pool.Close, nil
	}
	newUploader   = storage.NewUploader
	newTranslator = i18n.New
)

type App struct {
	config   *config.Config
	auth     client.AuthService
	flow     *services.AccountFlow
	lessons  services.LessonService
	homework services.HomeworkService
	tr       *i18n.Translator
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.RWMutex
	mode Mode

	closers []func()
}

// NewApp wires the REST client, the optional direct database and attachment
// storage, the translator and the account flow for cfg.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	rc := client.NewRESTClient(c.SupabaseURL, c.AnonKey, client.WithTimeout(c.RequestTimeout))

	var store client.DataStore = rc
	var closers []func()
	abort := func(err error) (*App, error) {
		runClosers(closers)
		_ = rc.Close()
		return nil, err
	}

	if c.DatabaseURL != "" {
		ds, closeStore, err := openStore(ctx, c)
		if err != nil {
			log.Error(ctx, "error opening database", "error", err)
			return nil, err
		}
		closers = append(closers, closeStore)
		store = ds
	}

	var attachments services.AttachmentStore
	if c.AttachmentsEnabled() {
		up, err := newUploader(storage.Config{
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		}, nil)
		if err != nil {
			return abort(fmt.Errorf("attachment storage: %w", err))
		}
		attachments = up
	}

	tr, err := newTranslator(i18n.Detect(c.Language, os.Getenv))
	if err != nil {
		return abort(err)
	}

	flow := services.NewAccountFlow(rc,
		services.WithLogger(log.With("component", "accountflow")),
		services.WithCooldownTicks(c.ResendCooldown),
	)

	return &App{
		config:   c,
		auth:     rc,
		flow:     flow,
		lessons:  services.NewLessonService(store, log.With("component", "lessons")),
		homework: services.NewHomeworkService(store, attachments, log.With("component", "homework")),
		tr:       tr,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  closers,
	}, nil
}

// Mode returns the current connectivity mode.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close ends the account flow and releases the backend connections.
func (a *App) Close() {
	a.flow.Close()
	if err := a.auth.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing client", "error", err)
	}
	runClosers(a.closers)
	a.closers = nil
}

// runClosers calls fns in reverse order.
func runClosers(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

func (a *App) isLoggedIn() bool {
	return a.flow.State() == services.StateAuthenticated
}

func (a *App) isPending() bool {
	return a.flow.State() == services.StatePendingConfirmation
}

// StartOnlineStatusWatcher pings the provider every interval and switches
// between online and offline mode. It blocks until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, clk clock.Clock, interval time.Duration) {

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail shows err to the user and returns it.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Debug(ctx, op+" failed", "error", err)
	a.println(services.UserMessage(err))
	return err
}
