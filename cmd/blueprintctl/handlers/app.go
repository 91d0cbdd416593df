// Package handlers implements the console commands.
//
// Every command runs against an App: the loaded configuration, the Ambari
// client, the session and the orchestrator that owns the staged
// assignment. The App lives in a Runtime carried by the context so that
// the interactive shell can run many command lines against one session.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/imamik/blueprintctl/internal/config"
	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/platform/hcloud"
	"github.com/imamik/blueprintctl/internal/platform/s3"
	"github.com/imamik/blueprintctl/internal/provisioning"
	"github.com/imamik/blueprintctl/internal/session"
	"github.com/imamik/blueprintctl/internal/shell"
)

// Inventory lists the hosts that may be assigned.
type Inventory interface {
	Hosts(ctx context.Context) (map[string]string, error)
	HostNames(ctx context.Context) ([]string, error)
}

// Archiver stores blueprint exports.
type Archiver interface {
	Archive(ctx context.Context, cluster string, data []byte) (string, error)
}

// Factory function variables - can be replaced in tests.
var (
	loadConfig = config.Load

	newAmbariClient = func(cfg *config.Config, log logr.Logger) (*ambari.Client, error) {
		return ambari.NewClient(cfg.Server.URL, cfg.Server.User, cfg.Server.Password,
			ambari.WithTimeout(cfg.RequestTimeout()),
			ambari.WithLogger(log.WithName("ambari")),
			ambari.WithDebug(cfg.Debug),
		)
	}

	newHCloudInventory = func(cfg *config.Config) (Inventory, error) {
		hc := cfg.Hosts.HCloud
		return hcloud.NewInventory(hc.Token,
			hcloud.WithLabelSelector(hc.LabelSelector),
			hcloud.WithPrivateIP(hc.UsePrivateIP),
			hcloud.WithRequestTimeout(timeouts(cfg).InventoryRequest),
		)
	}

	newArchiver = func(cfg config.ArchiveConfig) (Archiver, error) {
		return s3.NewArchiver(cfg.Endpoint, cfg.Region, cfg.Bucket, cfg.AccessKey, cfg.SecretKey)
	}

	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// App is the state shared by all commands of one console session.
type App struct {
	Config       *config.Config
	Client       *ambari.Client
	Session      *session.Context
	Orchestrator *provisioning.Orchestrator
	Inventory    Inventory
	Registry     *shell.Registry

	Out io.Writer
	Log logr.Logger

	metrics *http.Server
	inShell bool
}

// Options describes the command invocation being bootstrapped.
type Options struct {
	ConfigPath string
	Flags      *pflag.FlagSet
	Out        io.Writer
	Err        io.Writer
	// Command is the command path without the binary name, e.g. "cluster create".
	Command string
}

// Runtime holds the App of a process once it was created.
type Runtime struct {
	mu  sync.Mutex
	app *App
}

type runtimeKey struct{}

// NewRuntime returns ctx carrying an empty Runtime and a function that
// releases the App created in it.
func NewRuntime(ctx context.Context) (context.Context, func()) {
	rt := &Runtime{}
	return context.WithValue(ctx, runtimeKey{}, rt), rt.close
}

func runtimeFrom(ctx context.Context) *Runtime {
	rt, _ := ctx.Value(runtimeKey{}).(*Runtime)
	return rt
}

func (rt *Runtime) close() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.app != nil {
		rt.app.Close()
	}
}

var errNoApp = errors.New("console is not initialized")

func appFrom(ctx context.Context) (*App, error) {
	rt := runtimeFrom(ctx)
	if rt == nil {
		return nil, errNoApp
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.app == nil {
		return nil, errNoApp
	}
	return rt.app, nil
}

// Bootstrap creates the App on first use and checks that the command is
// available in the current session state. The returned context carries
// the runtime.
func Bootstrap(ctx context.Context, opts Options) (context.Context, error) {
	rt := runtimeFrom(ctx)
	if rt == nil {
		ctx, _ = NewRuntime(ctx)
		rt = runtimeFrom(ctx)
	}

	rt.mu.Lock()
	if rt.app == nil {
		app, err := newApp(ctx, opts)
		if err != nil {
			rt.mu.Unlock()
			return ctx, err
		}
		rt.app = app
	}
	app := rt.app
	rt.mu.Unlock()

	return ctx, app.Registry.Check(opts.Command)
}

func newApp(ctx context.Context, opts Options) (*App, error) {
	cfg, err := loadConfig(opts.ConfigPath, opts.Flags)
	if err != nil {
		return nil, err
	}

	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := newLogger(errOut, cfg.Debug)

	client, err := newAmbariClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ambari client: %w", err)
	}

	var inv Inventory = client
	if cfg.Hosts.Source == config.HostSourceHCloud {
		inv, err = newHCloudInventory(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create hcloud inventory: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	observer := provisioning.NewLogObserver(log.V(1).WithName("orchestrator")).
		WithFields(map[string]string{"server": client.URL()})
	sess := session.New()

	app := &App{
		Config:  cfg,
		Client:  client,
		Session: sess,
		Orchestrator: provisioning.New(client, sess,
			provisioning.WithObserver(observer),
			provisioning.WithMetrics(provisioning.NewMetrics(reg)),
			provisioning.WithHostSource(inv),
		),
		Inventory: inv,
		Out:       out,
		Log:       log,
	}
	app.Registry = app.rules()

	if cfg.Metrics.Addr != "" {
		srv, err := serveMetrics(cfg.Metrics.Addr, reg, log)
		if err != nil {
			return nil, err
		}
		app.metrics = srv
	}

	app.connect(ctx)
	return app, nil
}

// connect attaches the session to the cluster the server already manages.
func (a *App) connect(ctx context.Context) {
	name, err := a.Client.ActiveClusterName(ctx)
	if err != nil {
		a.Log.Info("could not reach the Ambari server", "url", a.Client.URL(), "error", err.Error())
		return
	}
	if name != "" {
		a.Session.ConnectCluster(name)
	}
}

// Close stops the metrics listener, if any.
func (a *App) Close() {
	if a.metrics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.metrics.Shutdown(ctx); err != nil {
		a.Log.Error(err, "metrics listener shutdown failed")
	}
	a.metrics = nil
}

// rules registers the availability of every context-dependent command.
func (a *App) rules() *shell.Registry {
	connected := a.Session.IsConnectedToCluster
	focused := a.Session.IsFocusOnBlueprint
	debug := a.Client.Debug

	r := shell.NewRegistry()
	r.Register("tasks", connected)
	r.Register("services list", connected)
	r.Register("services components", connected)
	r.Register("services start", connected)
	r.Register("services stop", connected)
	r.Register("debug on", shell.Not(debug))
	r.Register("debug off", debug)
	r.Register("cluster build", shell.Not(connected))
	r.Register("cluster provision", shell.All(shell.Not(connected), shell.Not(focused)))
	r.Register("cluster assign", focused)
	r.Register("cluster preview", focused)
	r.Register("cluster reset", focused)
	r.Register("cluster create", focused)
	r.Register("cluster delete", connected)
	r.Register("shell", func() bool { return !a.inShell })
	return r
}

// timeouts tolerates a Config built without Load.
func timeouts(cfg *config.Config) *config.Timeouts {
	if cfg.Timeouts == nil {
		return config.LoadTimeouts()
	}
	return cfg.Timeouts
}

func newLogger(w io.Writer, debug bool) logr.Logger {
	verbosity := 0
	if debug {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

// report prints an orchestrator outcome. A failed outcome becomes
// shell.ErrReported so the exit status reflects it without printing twice.
func (a *App) report(out provisioning.Outcome) error {
	_, _ = fmt.Fprintln(a.Out, out.Message)
	if !out.Success {
		return shell.ErrReported
	}
	return nil
}
