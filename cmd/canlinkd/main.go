// Command canlinkd configures CAN network interfaces from declarative
// YAML files.
//
// The daemon loads a configuration directory, dumps the kernel's links
// over rtnetlink, and drives every matching interface through the down,
// configure, up sequence. It exits once every link has settled, or stays
// resident with -interactive.
//
// Usage:
//
//	canlinkd [flags]
//
// Flags:
//
//	-config-dir string  Configuration directory (default "/etc/canlink")
//	-log string         CBOR event log path
//	-verbose            Enable debug console output
//	-dry-run            Print the encoded requests instead of applying them
//	-interactive        Start the interactive console
//	-iface string       Restrict configuration to one interface
//
// Examples:
//
//	# Apply /etc/canlink to all matching interfaces
//	canlinkd
//
//	# Show what would be sent for can0 without touching the kernel
//	canlinkd -config-dir ./conf -dry-run -iface can0
//
//	# Configure interactively with an event log
//	canlinkd -interactive -log /var/log/canlink.clog
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/canlink-project/canlink-go/cmd/canlinkd/interactive"
	"github.com/canlink-project/canlink-go/pkg/config"
	"github.com/canlink-project/canlink-go/pkg/link"
	"github.com/canlink-project/canlink-go/pkg/log"
	"github.com/canlink-project/canlink-go/pkg/rtnl"
)

// Options holds the daemon configuration.
type Options struct {
	ConfigDir   string
	LogFile     string
	Verbose     bool
	DryRun      bool
	Interactive bool
	Iface       string
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigDir, "config-dir", "/etc/canlink", "Configuration directory")
	flag.StringVar(&opts.LogFile, "log", "", "CBOR event log path")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Enable debug console output")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Print the encoded requests instead of applying them")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Start the interactive console")
	flag.StringVar(&opts.Iface, "iface", "", "Restrict configuration to one interface")
}

func main() {
	flag.Parse()
	stdlog.SetFlags(stdlog.Ltime)

	files, err := config.LoadDir(opts.ConfigDir)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	if len(files) == 0 {
		stdlog.Printf("No configuration files in %s", opts.ConfigDir)
	}

	logger, closeLog, err := buildLogger()
	if err != nil {
		stdlog.Fatalf("Failed to open event log: %v", err)
	}
	defer closeLog()

	if opts.DryRun {
		if err := dryRun(os.Stdout, files, opts.Iface, logger); err != nil {
			stdlog.Fatalf("Dry run failed: %v", err)
		}
		return
	}

	conn, err := rtnl.Dial()
	if err != nil {
		stdlog.Fatalf("Failed to open rtnetlink: %v", err)
	}
	defer conn.Close()

	manager := link.NewManager(conn, logger)
	configurator := link.NewConfigurator(manager, conn, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logDaemonState(logger, "running", "")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := conn.Dispatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	links, err := discoverLinks(conn, manager)
	if err != nil {
		stop()
		_ = g.Wait()
		stdlog.Fatalf("Failed to list links: %v", err)
	}

	configured := applyConfiguration(configurator, manager, files, links, logger)

	if opts.Interactive {
		console, err := interactive.New(manager, configurator, conn, files, logger)
		if err != nil {
			stop()
			_ = g.Wait()
			stdlog.Fatalf("Failed to start console: %v", err)
		}
		console.Run(ctx, stop)
		logDaemonState(logger, "stopped", "console exit")
	} else {
		reason := waitSettled(ctx, manager, stop)
		logDaemonState(logger, "stopped", reason)
	}

	if err := g.Wait(); err != nil {
		stdlog.Fatalf("Dispatcher failed: %v", err)
	}

	if configured > 0 {
		printSummary(manager)
	}
	if anyFailed(manager) {
		os.Exit(1)
	}
}

// buildLogger assembles the event logger: the slog mirror on stderr,
// plus the CBOR file log when -log is given.
func buildLogger() (log.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	loggers := []log.Logger{log.NewSlogAdapter(slogger)}
	closeLog := func() {}

	if opts.LogFile != "" {
		fl, err := log.NewFileLogger(opts.LogFile)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closeLog = func() { _ = fl.Close() }
	}

	if len(loggers) == 1 {
		return loggers[0], closeLog, nil
	}
	return log.NewMultiLogger(loggers...), closeLog, nil
}

// discoverLinks dumps the kernel links and registers them with the
// manager. With -iface set, other interfaces are ignored entirely.
func discoverLinks(conn *rtnl.Conn, manager *link.Manager) ([]*link.Link, error) {
	infos, err := conn.List()
	if err != nil {
		return nil, err
	}

	var links []*link.Link
	for _, info := range infos {
		if opts.Iface != "" && info.Name != opts.Iface {
			continue
		}
		l := link.New(info.Index, info.Name, info.Kind, info.Flags)
		manager.Add(l)
		links = append(links, l)
	}
	return links, nil
}

// applyConfiguration matches files to links and starts a configuration
// sequence for every match. It returns the number of started sequences.
func applyConfiguration(configurator *link.Configurator, manager *link.Manager, files []*config.File, links []*link.Link, logger log.Logger) int {
	configured := 0
	for _, l := range links {
		file := matchFile(files, l.Name)
		if file == nil {
			manager.Enter(l, link.StateUnmanaged)
			continue
		}

		l.Config = file.Resolve(logger)
		logger.Log(log.Event{
			Timestamp:  time.Now(),
			Link:       l.Name,
			Ifindex:    l.Index,
			Category:   log.CategoryConfig,
			ConfigLoad: &log.ConfigLoadEvent{File: file.Path, Message: "applying configuration"},
		})
		if err := configurator.Configure(l); err != nil {
			stdlog.Printf("Configuring %s failed: %v", l.Name, err)
			continue
		}
		configured++
	}
	return configured
}

// matchFile returns the first file whose pattern matches name, in file
// name order.
func matchFile(files []*config.File, name string) *config.File {
	for _, f := range files {
		if f.Matches(name) {
			return f
		}
	}
	return nil
}

// waitSettled blocks until no link is mid-sequence, then stops the
// dispatcher. It returns the reason the wait ended.
func waitSettled(ctx context.Context, manager *link.Manager, stop func()) string {
	defer stop()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "signal"
		case <-ticker.C:
			if settled(manager) {
				return "idle"
			}
		}
	}
}

// settled reports whether every managed link reached a resting state.
func settled(manager *link.Manager) bool {
	for _, l := range manager.Links() {
		if l.State() == link.StateConfiguring {
			return false
		}
	}
	return true
}

func anyFailed(manager *link.Manager) bool {
	for _, l := range manager.Links() {
		if l.State() == link.StateFailed {
			return true
		}
	}
	return false
}

func printSummary(manager *link.Manager) {
	for _, l := range manager.Links() {
		stdlog.Printf("%s (index %d): %s", l.Name, l.Index, l.State())
	}
}

// logDaemonState records a daemon start or stop in the event log.
func logDaemonState(logger log.Logger, state, reason string) {
	logger.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryDaemon,
		StateChange: &log.StateChangeEvent{
			NewState: state,
			Reason:   reason,
		},
	})
}
