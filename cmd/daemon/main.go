package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/synframe/internal/album"
	"github.com/genricoloni/synframe/internal/config"
	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/engine"
	"github.com/genricoloni/synframe/internal/executor"
	"github.com/genricoloni/synframe/internal/fetcher"
	"github.com/genricoloni/synframe/internal/monitor"
	"github.com/genricoloni/synframe/internal/power"
	"github.com/genricoloni/synframe/internal/processor"
	"github.com/genricoloni/synframe/internal/push"
	"github.com/genricoloni/synframe/internal/render"
	"github.com/genricoloni/synframe/internal/slides"
	"github.com/genricoloni/synframe/internal/slideshow"
	"github.com/genricoloni/synframe/internal/system"
	"github.com/genricoloni/synframe/internal/textfit"
	"github.com/genricoloni/synframe/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// runOptions are the command line settings the app graph is built from
type runOptions struct {
	ConfigPath string
	Debug      bool
}

// AppOptions is the dependency graph with default command line settings
var AppOptions = appOptions(runOptions{})

func appOptions(opts runOptions) fx.Option {
	return fx.Options(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		fx.Supply(opts),

		// Provide dependencies
		fx.Provide(
			newLogger,
			newConfig,
			textfit.NewFaceMeasurer,
			system.NewConsole,
			newSink,
			newScreenResolution,
			fx.Annotate(processor.NewBlurProcessor, fx.As(new(domain.ImageProcessor))),
			fx.Annotate(fetcher.NewFetcher, fx.As(new(domain.Fetcher))),
			newSlides,
			newDisplay,
			newScheduler,
			newDisplayPower,
			newPowerController,
			newAlbumHandler,
			web.NewInbox,
			newMonitors,
			newEngine,
			newHTTPServer,
			newConfigWatcher,
		),

		// Lifecycle hooks
		fx.Invoke(registerHooks),
	)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "synframe:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	root := &cobra.Command{
		Use:           "synframe",
		Short:         "Photo frame daemon with a clock and now-playing album art",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: standard locations)")
	root.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "development logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the frame daemon",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), opts)
			},
		},
		newArtCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Println("synframe", version)
			},
		},
	)
	return root
}

func newArtCmd() *cobra.Command {
	var (
		out  string
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "art",
		Short: "Write a generated placeholder slide",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = rand.Uint64()
			}
			img := slides.Mondrian(rand.New(rand.NewPCG(seed, seed)), slides.ArtWidth, slides.ArtHeight)
			if err := imaging.Save(img, out); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			cmd.Println("wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "mondrian.png", "output file, format from the extension")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	return cmd
}

func run(ctx context.Context, opts runOptions) error {
	app := fx.New(appOptions(opts))
	if err := app.Err(); err != nil {
		return err
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startCtx, cancelStart := context.WithTimeout(ctx, app.StartTimeout())
	defer cancelStart()

	// Start the application
	if err := app.Start(startCtx); err != nil {
		return err
	}

	// Wait for a signal or an internal shutdown request
	select {
	case <-ctx.Done():
	case <-app.Wait():
	}

	// Stop the application gracefully
	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	return app.Stop(stopCtx)
}

// newLogger creates a new zap logger instance
func newLogger(opts runOptions) (*zap.Logger, error) {
	if opts.Debug {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newConfig(logger *zap.Logger, opts runOptions) (*config.Config, error) {
	return config.Load(logger, opts.ConfigPath)
}

func newSink(logger *zap.Logger, cfg *config.Config, console *system.Console) (render.Sink, error) {
	if cfg.Output == config.OutputFile {
		return render.NewFileSink(logger, cfg.OutputDir, cfg.Width, cfg.Height)
	}
	return render.NewFramebufferSink(logger, console, cfg.FramebufferDevice)
}

func newScreenResolution(logger *zap.Logger, sink render.Sink) *domain.ScreenResolution {
	sizer, _ := sink.(monitor.Sizer)
	return monitor.NewScreenResolution(logger, sizer)
}

func newSlides(logger *zap.Logger, cfg *config.Config) ([]domain.Slide, error) {
	return slides.Load(logger, slides.Options{
		Enabled: cfg.Slideshow.Enabled,
		Folder:  cfg.Slideshow.Folder,
	})
}

func newDisplay(
	logger *zap.Logger,
	cfg *config.Config,
	sink render.Sink,
	faces *textfit.FaceMeasurer,
	proc domain.ImageProcessor,
	res *domain.ScreenResolution,
) *render.Display {
	return render.NewDisplay(logger, sink, faces, proc, render.Options{
		Width:       res.Width,
		Height:      res.Height,
		ClockSize:   cfg.Clock.Size,
		ClockOffset: cfg.Clock.Offset,
		Location:    cfg.Location(),
	})
}

func newScheduler(logger *zap.Logger, cfg *config.Config, display *render.Display, set []domain.Slide) *slideshow.Scheduler {
	return slideshow.New(logger, display, display, set, slideshow.Options{
		ClockRatio: cfg.ClockRatio(),
		Transition: cfg.Transition(),
	})
}

// newDisplayPower returns nil when power control is off or no command
// works on this host; the controller then only logs its decisions
func newDisplayPower(logger *zap.Logger, cfg *config.Config) domain.DisplayPower {
	if !cfg.DisplayControl() {
		return nil
	}
	ex, err := executor.NewExecutor(logger)
	if err != nil {
		logger.Warn("Display power control unavailable", zap.Error(err))
		return nil
	}
	return ex
}

func newPowerController(logger *zap.Logger, cfg *config.Config, dp domain.DisplayPower) *power.Controller {
	return power.NewController(logger, dp, power.Options{
		Enabled:  cfg.DisplayControl(),
		OnHour:   cfg.Display.OnHour,
		OffHour:  cfg.Display.OffHour,
		Location: cfg.Location(),
	})
}

func newAlbumHandler(
	logger *zap.Logger,
	cfg *config.Config,
	display *render.Display,
	scheduler *slideshow.Scheduler,
	fetch domain.Fetcher,
	proc domain.ImageProcessor,
	faces *textfit.FaceMeasurer,
	ctl *power.Controller,
) *album.Handler {
	return album.NewHandler(logger, display, scheduler, fetch, proc, faces, display, ctl, album.Options{
		BoxWidth:  float64(cfg.Text.BoxWidth),
		BoxHeight: float64(cfg.Text.BoxHeight),
	})
}

type monitorsOut struct {
	fx.Out

	Monitors []domain.Monitor `group:"monitors,flatten"`
}

// newMonitors picks the album update sources. The HTTP inbox is always one.
func newMonitors(logger *zap.Logger, cfg *config.Config, inbox *web.Inbox) monitorsOut {
	monitors := []domain.Monitor{inbox}
	if cfg.MPRIS {
		monitors = append(monitors, monitor.NewMprisMonitor(logger))
	}
	if cfg.PushURL != "" {
		monitors = append(monitors, push.NewMonitor(logger, push.Options{URL: cfg.PushURL}))
	}
	return monitorsOut{Monitors: monitors}
}

type engineParams struct {
	fx.In

	Logger   *zap.Logger
	Monitors []domain.Monitor `group:"monitors"`
	Handler  *album.Handler
	Power    *power.Controller
}

func newEngine(p engineParams) *engine.Engine {
	return engine.NewEngine(p.Logger, p.Monitors, p.Handler, []engine.Observer{p.Power})
}

func newHTTPServer(
	logger *zap.Logger,
	cfg *config.Config,
	scheduler *slideshow.Scheduler,
	handler *album.Handler,
	display *render.Display,
	inbox *web.Inbox,
) *web.HTTPServer {
	return web.NewHTTPServer(logger,
		web.ServerConfig{ListenAddr: cfg.ListenAddr, DevMode: cfg.DevMode},
		web.APIV1Deps{
			Scheduler: scheduler,
			Album:     handler,
			Screen:    display,
			Inbox:     inbox,
			PublicURL: cfg.PublicURL,
		})
}

// newConfigWatcher shuts the app down when a loaded config file changes so
// the service manager restarts it with the new settings. Locked settings
// are not watched.
func newConfigWatcher(logger *zap.Logger, cfg *config.Config, shutdowner fx.Shutdowner) *config.Watcher {
	files := cfg.Files
	if cfg.LockSettings {
		files = nil
	}
	return config.NewWatcher(logger, files, func() {
		logger.Info("Config changed, restarting")
		if err := shutdowner.Shutdown(); err != nil {
			logger.Warn("Shutdown request failed", zap.Error(err))
		}
	})
}

// lifecycle is implemented by every long-running component
type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type hookParams struct {
	fx.In

	LC        fx.Lifecycle
	Logger    *zap.Logger
	Config    *config.Config
	Faces     *textfit.FaceMeasurer
	Display   *render.Display
	Scheduler *slideshow.Scheduler
	Power     *power.Controller
	Engine    *engine.Engine
	Server    *web.HTTPServer
	Watcher   *config.Watcher
}

// registerHooks sets up application lifecycle hooks. Components start in
// order and stop in reverse.
func registerHooks(p hookParams) {
	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("Synframe daemon started",
				zap.String("name", p.Config.Name),
				zap.String("version", version),
				zap.Strings("config", p.Config.Files))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("Shutting down")
			return p.Faces.Close()
		},
	})

	for _, c := range []lifecycle{p.Display, p.Scheduler, p.Power, p.Engine, p.Server, p.Watcher} {
		p.LC.Append(fx.Hook{OnStart: c.Start, OnStop: c.Stop})
	}
}
