package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/fiber/internal/config"
	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/internal/scene"
	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/render"
)

type renderOptions struct {
	format string
	events []string
	stats  bool
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [scene.yaml]",
		Short: "Render a scene into an in-memory host tree",
		Long: `Render a scene file and print the resulting host tree.

Each --event is dispatched in order after the initial render and the
scheduler settles before the next one. Events are written as
<id>:<event> or <id>:<event>=<payload>, where <id> is a host id
attribute.

Formats:
  tree   indented outline (default)
  shape  one-line compact form
  json   node snapshot
  html   committed tree as HTML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.ScenePath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("E120").WithDetail("no scene file given and none configured in " + config.ConfigFileName)
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags, cfg, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "tree", "Output format: tree, shape, json or html")
	cmd.Flags().StringArrayVarP(&opts.events, "event", "e", nil, "Dispatch an event after rendering (repeatable)")
	cmd.Flags().BoolVar(&opts.stats, "stats", true, "Print pass statistics")

	return cmd
}

// renderRun records what the scheduler did while rendering a scene.
type renderRun struct {
	commits []fiber.CommitInfo
	elapsed time.Duration
}

func (r *renderRun) units() int {
	n := 0
	for _, c := range r.commits {
		n += c.Units
	}
	return n
}

func runRender(ctx context.Context, out, logOut io.Writer, flags *globalFlags, cfg *config.Config, path string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch opts.format {
	case "tree", "shape", "json", "html":
	default:
		return fmt.Errorf("unknown format %q (want tree, shape, json or html)", opts.format)
	}

	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	view, err := sc.Build(scene.Builtins())
	if err != nil {
		return err
	}

	run := &renderRun{}
	mem := host.NewMemory()
	driver := fiber.NewLoopDriver(cfg.SliceDuration())
	sched := fiber.New(mem, driver,
		fiber.WithLogger(flags.logger(logOut, cfg)),
		fiber.WithMinRemaining(cfg.MinRemainingDuration()),
		fiber.WithDebug(flags.debugEnabled(cfg)),
		fiber.WithOnCommit(func(info fiber.CommitInfo) {
			run.commits = append(run.commits, info)
		}),
	)

	start := time.Now()
	if err := sched.Render(view, mem.Container()); err != nil {
		return err
	}
	if err := driver.Run(ctx); err != nil {
		return err
	}
	for _, arg := range opts.events {
		if err := dispatch(ctx, sched, driver, mem, arg); err != nil {
			return err
		}
	}
	run.elapsed = time.Since(start)

	return printRender(newPrinter(out), sc, mem, run, opts)
}

// dispatch parses an event flag, fires it on the matching host node and
// settles the resulting pass.
func dispatch(ctx context.Context, sched *fiber.Scheduler, driver *fiber.LoopDriver, mem *host.Memory, arg string) error {
	id, event, payload, err := parseEvent(arg)
	if err != nil {
		return err
	}
	node := mem.Find(func(n *host.Node) bool {
		v, ok := n.Attrs["id"]
		return ok && fmt.Sprint(v) == id
	})
	if node == nil {
		return fmt.Errorf("event %q: no node with id %q", arg, id)
	}

	var dispatchErr error
	sched.Batch(func() {
		dispatchErr = mem.Dispatch(node, event, payload)
	})
	if dispatchErr != nil {
		return fmt.Errorf("event %q: %w", arg, dispatchErr)
	}
	return driver.Run(ctx)
}

// parseEvent splits "id:event=payload". The payload is optional.
func parseEvent(arg string) (id, event string, payload any, err error) {
	id, rest, ok := strings.Cut(arg, ":")
	if !ok || id == "" || rest == "" {
		return "", "", nil, fmt.Errorf("invalid event %q (want <id>:<event>[=<payload>])", arg)
	}
	event, value, hasValue := strings.Cut(rest, "=")
	if event == "" {
		return "", "", nil, fmt.Errorf("invalid event %q: empty event name", arg)
	}
	if hasValue {
		payload = value
	}
	return id, event, payload, nil
}

func printRender(p *printer, sc *scene.Scene, mem *host.Memory, run *renderRun, opts renderOptions) error {
	switch opts.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(mem.Snapshot())
	case "html":
		return render.New(render.Options{Pretty: true}).Write(p.w, mem.Container())
	}

	if opts.stats {
		p.title(sc.Name)
		if sc.Description != "" {
			fmt.Fprintln(p.w, "  "+sc.Description)
		}
		p.field("Passes:", len(run.commits))
		p.field("Units:", run.units())
		p.field("Nodes:", mem.Count())
		p.field("Elapsed:", run.elapsed.Round(time.Microsecond))
		fmt.Fprintln(p.w)
	}

	switch opts.format {
	case "shape":
		fmt.Fprintln(p.w, mem.Shape())
	default:
		p.block(strings.TrimRight(mem.Dump(), "\n"))
	}
	if opts.stats && len(opts.events) > 0 {
		p.success("Dispatched %d events", len(opts.events))
	}
	return nil
}
