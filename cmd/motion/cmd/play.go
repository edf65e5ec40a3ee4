package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
	"github.com/go-drift/motion/pkg/surface/mqttsink"
	"github.com/go-drift/motion/pkg/surface/store"
	"github.com/go-drift/motion/pkg/surface/termsink"
	"github.com/go-drift/motion/pkg/surface/wssink"
)

func init() {
	RegisterCommand(&Command{
		Name:  "play",
		Short: "Play an animation, sequence, group or transition",
		Long: `Play a named entry of the animation document until it settles.

The name is looked up among animations, then sequences, groups and
transitions. Every applied frame is published to the sinks configured in
the document; --term adds a terminal preview. When the document has a
store sink, final values are persisted and restored on the next run so
that continuing animations pick up where the last run stopped.

Press q or Ctrl-C to stop early.`,
		Usage: "motion play <name> [--term] [--no-sinks] [--no-store]",
		Run:   runPlay,
	})
}

type playOptions struct {
	name    string
	term    bool
	noSinks bool
	noStore bool
}

func parsePlayArgs(args []string) (playOptions, error) {
	var opts playOptions
	for _, arg := range args {
		switch arg {
		case "--term":
			opts.term = true
		case "--no-sinks":
			opts.noSinks = true
		case "--no-store":
			opts.noStore = true
		default:
			if strings.HasPrefix(arg, "--") {
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			if opts.name != "" {
				return opts, fmt.Errorf("unexpected argument %q", arg)
			}
			opts.name = arg
		}
	}
	if opts.name == "" {
		return opts, fmt.Errorf("play requires a name")
	}
	return opts, nil
}

func runPlay(args []string) error {
	opts, err := parsePlayArgs(args)
	if err != nil {
		return err
	}
	p, err := loadProject()
	if err != nil {
		return err
	}
	doc := p.Document

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fan := surface.NewFanout()
	defer fan.Close()

	var renderer *termsink.Renderer
	if opts.term || (doc.Sinks.Terminal != nil && doc.Sinks.Terminal.Enabled) {
		renderer, err = termsink.Open()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		fan.Add(renderer)
		go renderer.WatchQuit(stop)
	}
	if !opts.noSinks {
		if err := openSinks(doc.Sinks, fan); err != nil {
			return err
		}
	}
	mem := surface.NewMemory(fan)

	sched := animation.NewScheduler()
	env := config.Env{Host: mem, Scheduler: sched}

	if doc.Sinks.Store != nil && !opts.noStore {
		st, err := store.Open(p.AppName)
		if err != nil {
			return err
		}
		if err := st.Restore(mem, elements(doc)...); err != nil {
			return err
		}
		env.OnComplete = st.Persist(doc)
		logger.Debug().Str("app", p.AppName).Msg("store restored")
	}

	if err := startEntry(doc, opts.name, env); err != nil {
		return err
	}
	if renderer != nil {
		redraw := sched.NewTicker(func(time.Duration) bool {
			renderer.Draw()
			return sched.Len() > 1
		})
		redraw.Start()
	}

	logger.Info().Str("name", opts.name).Msg("playing")
	err = sched.RunUntilIdle(ctx, animation.FrameInterval)
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("stopped")
		err = nil
	}
	if closeErr := fan.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("closing sinks")
	}
	if err != nil {
		return err
	}

	if renderer == nil {
		for _, el := range mem.Elements() {
			fmt.Fprintf(stdout, "%s  %s\n", el, formatValues(mem.Values(el)))
		}
	}
	return nil
}

func openSinks(s config.Sinks, fan *surface.Fanout) error {
	if s.MQTT != nil {
		sink, err := mqttsink.Dial(*s.MQTT)
		if err != nil {
			return err
		}
		fan.Add(sink)
		logger.Info().Str("url", s.MQTT.URL).Str("topic", s.MQTT.Topic).Msg("mqtt sink")
	}
	if s.WebSocket != nil {
		fan.Add(wssink.Listen(*s.WebSocket))
	}
	return nil
}

// startEntry starts whatever name refers to, looking in animations first.
func startEntry(doc *config.Document, name string, env config.Env) error {
	if _, ok := doc.Animations[name]; ok {
		a, err := doc.Build(name, env)
		if err != nil {
			return err
		}
		return a.Start()
	}
	if _, ok := doc.Sequences[name]; ok {
		seq, err := doc.Sequence(name, env)
		if err != nil {
			return err
		}
		return seq.PlayTimeline(env.Scheduler)
	}
	if _, ok := doc.Groups[name]; ok {
		g, err := doc.Group(name, env)
		if err != nil {
			return err
		}
		return g.Play()
	}
	if _, ok := doc.Transitions[name]; ok {
		c, err := doc.Transition(name, env)
		if err != nil {
			return err
		}
		if err := c.BeginInteractive(); err != nil {
			return err
		}
		c.FinishInteractive(1)
		return nil
	}
	return fmt.Errorf("%w: %q", config.ErrUnknownAnimation, name)
}

// elements returns every element the document animates.
func elements(doc *config.Document) []string {
	seen := map[string]bool{}
	var out []string
	for name, spec := range doc.Animations {
		el := spec.ElementName(name)
		if !seen[el] {
			seen[el] = true
			out = append(out, el)
		}
	}
	sort.Strings(out)
	return out
}

func formatValues(values map[animation.Property]animation.Value) string {
	tracks := make([]animation.Track, 0, len(values))
	for p, v := range values {
		tracks = append(tracks, animation.Track{Property: p, Current: v})
	}
	return formatTracks(tracks)
}
