package core

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chess10kp/gocalc/internal/bus"
	"github.com/chess10kp/gocalc/internal/calc"
	"github.com/chess10kp/gocalc/internal/config"
	"github.com/chess10kp/gocalc/internal/ipc"
	"github.com/chess10kp/gocalc/internal/wm"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// App is main application
type App struct {
	config   *config.Config
	running  bool
	sigChan  chan os.Signal
	stopped  chan struct{}
	stopOnce sync.Once
	cache    *calc.ResultCache
	window   *Window
	ipc      *ipc.Server
	bus      *bus.Service
}

// NewApp creates a new application
func NewApp(cfg *config.Config) (*App, error) {
	cache, err := calc.NewResultCache(cfg.Evaluator.CacheSize)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		sigChan: make(chan os.Signal, 1),
		stopped: make(chan struct{}),
		cache:   cache,
	}, nil
}

// Run starts the application and blocks until the GTK main loop exits.
func (a *App) Run() error {
	a.running = true

	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-a.sigChan
		log.Printf("Received signal: %v", sig)
		glib.IdleAdd(func() bool {
			a.Quit()
			return false
		})
	}()

	log.Println("GoCalc starting...")

	if err := a.initialize(); err != nil {
		return err
	}

	gtk.Main()

	a.shutdown()
	return nil
}

func (a *App) initialize() error {
	log.Println("Initializing components...")

	gtk.Init(nil)
	SetupStyles(a.config)

	evaluator := calc.NewCachedEvaluator(a.cache, nil)

	w, err := NewWindow(a, a.config, evaluator)
	if err != nil {
		return err
	}
	a.window = w

	ipcServer := ipc.NewServer(a.config.SocketPath, ipc.NewControllerHandler(w.Controller(), &windowControl{app: a}, a.runOnMain))
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
	} else {
		a.ipc = ipcServer
	}

	if a.config.DBus.Enabled {
		svc := bus.NewService(a.config.DBus.Name, bus.NewCalculator(w.Controller(), evaluator, a.runOnMain))
		if err := svc.Start(); err != nil {
			log.Printf("Failed to start D-Bus service: %v", err)
		} else {
			a.bus = svc
		}
	}

	// The rule has to be in place before the window is mapped.
	if a.config.Sway.Float {
		if err := wm.FloatWindow(context.Background(), a.config.Window.Title, a.config.Sway.Sticky); err != nil {
			log.Printf("Failed to float window: %v", err)
		}
	}

	w.Show()

	log.Println("Initialization complete")
	return nil
}

// runOnMain executes f on the GTK main loop and waits for it. It gives up
// once the application is quitting.
func (a *App) runOnMain(f func()) {
	done := make(chan struct{})
	glib.IdleAdd(func() bool {
		f()
		close(done)
		return false
	})

	select {
	case <-done:
	case <-a.stopped:
	}
}

// Quit stops the GTK main loop. Must be called on the main loop.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	a.stopOnce.Do(func() { close(a.stopped) })
	gtk.MainQuit()
}

func (a *App) shutdown() {
	if a.ipc != nil {
		a.ipc.Stop()
	}

	if a.bus != nil {
		a.bus.Stop()
	}

	stats := a.cache.Stats()
	log.Printf("[RESULT-CACHE] size=%d hits=%d misses=%d hit_rate=%.2f",
		stats.Size, stats.Hits, stats.Misses, stats.HitRate)
}

// displayChanged forwards display updates from every input path to the
// D-Bus TextChanged signal.
func (a *App) displayChanged(text string) {
	if a.bus != nil {
		a.bus.TextChanged(text)
	}
}

// GetConfig returns the application config
func (a *App) GetConfig() *config.Config {
	return a.config
}

// windowControl lets IPC commands show, hide and quit the calculator.
type windowControl struct {
	app *App
}

func (c *windowControl) Show() {
	if c.app.window != nil {
		c.app.window.Show()
	}
}

func (c *windowControl) Hide() {
	if c.app.window != nil {
		c.app.window.Hide()
	}
}

func (c *windowControl) Quit() {
	c.app.Quit()
}
