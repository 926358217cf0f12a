// Package server initializes and runs the application server. It wires the
// store, the mail and image collaborators and the HTTP API, handles graceful
// shutdown, and spawns the camera-monitor side process at startup.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/sitenexus/sitenexus/internal/logging"
	"github.com/sitenexus/sitenexus/internal/server/config"
	"github.com/sitenexus/sitenexus/internal/server/httpapi"
	"github.com/sitenexus/sitenexus/internal/server/images"
	"github.com/sitenexus/sitenexus/internal/server/mail"
	"github.com/sitenexus/sitenexus/internal/server/shared/db"
	"github.com/sitenexus/sitenexus/internal/server/sites"
	"github.com/sitenexus/sitenexus/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	siteService *sites.Service
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx := context.Background()

	// An unreachable database is not fatal here: the server starts anyway
	// and each request touching the store fails on its own.
	if err := m.RunMigrations(ctx); err != nil {
		logger.Error(ctx, "migration error", "error", err)
	}

	imageStore, err := newImageStore(c, m)
	if err != nil {
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	mailer := mail.NewSendgridSender(c.SendgridAPIKey, c.MailFromName, c.MailFromAddr)

	us := users.NewService(m.Users(), imageStore, mailer, c)
	ss := sites.NewService(m.Sites())

	return &App{config: c, logger: logger, userService: us, siteService: ss}, nil
}

func newImageStore(c *config.Config, m db.RepositoryManager) (images.Store, error) {
	switch c.ImageStorage {
	case config.ImageStorageS3:
		return images.NewS3Store(c)
	case config.ImageStorageDB:
		return images.NewPostgresStore(m.Conn()), nil
	default:
		return nil, fmt.Errorf("unknown image storage backend: %q", c.ImageStorage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// startCameraMonitor spawns the camera-monitor command once, detached from
// the request path. Its exit status is logged and nothing more; it never
// affects readiness or any request's outcome.
func (app *App) startCameraMonitor(ctx context.Context) {
	command := app.config.CameraCommand
	if command == "" {
		return
	}

	parts := strings.Fields(command)
	cmd := exec.Command(parts[0], parts[1:]...)

	go func() {
		out, err := cmd.CombinedOutput()
		if err != nil {
			app.logger.Warn(ctx, "camera monitor exited with error", "error", err, "output", string(out))
			return
		}
		app.logger.Info(ctx, "camera monitor exited", "output", string(out))
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.siteService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.startCameraMonitor(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
