// Command onion sends text through a configured chain of stages.
//
// Usage:
//
//	onion [flags] [text ...]
//	onion serve [flags]
//
// Each argument is one input. With no arguments every line of stdin is one
// input. Results are printed one per line in input order.
//
// "onion serve" exposes the same chain over HTTP instead: POST /v1/run with
// {"inputs": [...]} answers {"data": {"results": [...]}}.
//
// The chain comes from chain.stages in the config file (./onion.yml,
// ./cmd/onion/config.yml, ./config.yml, or the user config directory) or from
// repeated -s flags. ONION_* environment variables override file values, for
// example ONION_CHAIN_WORKERS=8.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/onion/bootstrap"
	"github.com/kbukum/onion/cache"
	"github.com/kbukum/onion/internal/textstage"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	serve       bool
	configFile  string
	envFile     string
	stages      []string
	workers     int
	timeout     time.Duration
	port        int
	showVersion bool
	listStages  bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	if len(args) > 0 && args[0] == "serve" {
		o.serve = true
		args = args[1:]
	}

	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.configFile, "config", "c", "", "config file (searched for when unset)")
	fs.StringVar(&o.envFile, "env", "", ".env file loaded before ONION_* variables are read")
	fs.StringArrayVarP(&o.stages, "stage", "s", nil, "stage spec name[:arg], repeatable; replaces chain.stages")
	fs.IntVarP(&o.workers, "workers", "w", 0, "inputs processed at once; overrides chain.workers")
	fs.DurationVar(&o.timeout, "timeout", 0, "per-input time limit; overrides chain.timeout")
	fs.IntVarP(&o.port, "port", "p", 0, "listen port for serve; overrides server.port")
	fs.BoolVarP(&o.showVersion, "version", "v", false, "print version and exit")
	fs.BoolVar(&o.listStages, "list", false, "list available stages and exit")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if o.serve && fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s serve: unexpected arguments %q\n", serviceName, fs.Args())
		return o, nil, errors.New("unexpected arguments")
	}
	return o, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, inputs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, serviceName, version.Get().String())
		return exitOK
	}

	registry := textstage.Default()
	if opts.listStages {
		for _, name := range registry.List() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", serviceName, err)
		return exitError
	}
	cfg.ApplyDefaults()

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)
	logger.SetGlobalLogger(log)
	logger.RegisterComponents("observability")

	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", serviceName, err)
		return exitError
	}

	deps := chainDeps{registry: registry, log: log}
	if cfg.Telemetry.Enabled {
		app.OnStart(func(ctx context.Context) error {
			var err error
			deps.tel, err = startTelemetry(ctx, cfg, app)
			return err
		})
	}
	if cfg.Cache.Enabled {
		app.OnStart(func(ctx context.Context) error {
			client, err := cache.New(cfg.Cache, log)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				_ = client.Close()
				return err
			}
			app.OnStop(func(context.Context) error { return client.Close() })
			deps.store = cache.NewTypedStore[string](client, cfg.Cache.KeyPrefix)
			deps.cacheTTL = cfg.Cache.TTL
			return nil
		})
	}

	err = app.RunTask(ctx, func(ctx context.Context) error {
		observeResilience(&cfg.Chain.Resilience, log)
		chain, err := buildChain(&cfg.Chain, deps)
		if err != nil {
			return err
		}
		log.Debug("chain ready", logger.Fields("stages", cfg.Chain.Stages, "workers", cfg.Chain.Workers))

		if opts.serve {
			return serveAPI(ctx, cfg, chain.Compile(), log)
		}
		return runBatch(ctx, chain.Compile(), inputs, cfg.Chain.Workers, stdin, stdout)
	})
	if err != nil {
		log.Error("run failed", logger.ErrorFields("run", err))
		return exitError
	}
	return exitOK
}

// runBatch sends every input through h and prints the results in order.
func runBatch(ctx context.Context, h pipeline.Handler[string, string], inputs []string, workers int, stdin io.Reader, stdout io.Writer) error {
	if len(inputs) == 0 {
		lines, err := readLines(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		inputs = lines
	}

	results, err := pipeline.ExecuteEach(ctx, h, inputs, workers)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(stdout)
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	return w.Flush()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
