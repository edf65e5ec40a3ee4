package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/gestures"
	"github.com/go-drift/motion/pkg/surface"
)

func init() {
	RegisterCommand(&Command{
		Name:  "scrub",
		Short: "Print an animation at explicit progress fractions",
		Long: `Hold an animation and print its property values at evenly spaced
fractions from 0 to 1.

With --drag PX, a vertical pointer drag of PX points upwards is replayed
through a gesture controller instead; the command prints the fraction
after every sample, whether the release commits, and the values the
animation settles at.`,
		Usage: "motion scrub <animation> [--steps N] [--drag PX]",
		Run:   runScrub,
	})
}

type scrubOptions struct {
	name  string
	steps int
	drag  float64
}

func parseScrubArgs(args []string) (scrubOptions, error) {
	opts := scrubOptions{steps: 4}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--steps", "--drag":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a number", args[i])
			}
			n, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				return opts, fmt.Errorf("invalid %s %q", args[i], args[i+1])
			}
			if args[i] == "--steps" {
				if n < 1 {
					return opts, fmt.Errorf("--steps must be at least 1")
				}
				opts.steps = int(n)
			} else {
				opts.drag = n
			}
			i++
		default:
			if opts.name != "" {
				return opts, fmt.Errorf("unexpected argument %q", args[i])
			}
			opts.name = args[i]
		}
	}
	if opts.name == "" {
		return opts, fmt.Errorf("scrub requires an animation name")
	}
	return opts, nil
}

func runScrub(args []string) error {
	opts, err := parseScrubArgs(args)
	if err != nil {
		return err
	}
	p, err := loadProject()
	if err != nil {
		return err
	}

	sched := animation.NewScheduler()
	a, err := p.Document.Build(opts.name, config.Env{
		Host:      surface.NewMemory(nil),
		Scheduler: sched,
	})
	if err != nil {
		return err
	}

	if opts.drag != 0 {
		return dragScrub(a, sched, opts.drag)
	}

	a.Hold()
	for i := 0; i <= opts.steps; i++ {
		f := float64(i) / float64(opts.steps)
		a.SetFractionComplete(f)
		fmt.Fprintf(stdout, "%.3f  %s\n", f, formatTracks(a.Tracks()))
	}
	a.Stop()
	return nil
}

// dragSamples is the number of pointer samples a --drag is split into.
const dragSamples = 10

func dragScrub(a *animation.Animation, sched *animation.Scheduler, distance float64) error {
	g := gestures.New(gestures.Options{})
	g.Bind(a)

	t := 0.0
	g.OnTapDown(0, 0, t)
	for i := 1; i <= dragSamples; i++ {
		t += animation.FrameInterval.Seconds() * 1000
		g.OnTapMove(0, -distance*float64(i)/dragSamples, t)
		fmt.Fprintf(stdout, "%.3f  %s\n", a.FractionComplete(), formatTracks(a.Tracks()))
	}

	committed := g.OnTapUp()
	verdict := "cancelled"
	if committed {
		verdict = "committed"
	}
	fmt.Fprintf(stdout, "%s at velocity %.3f\n", verdict, g.Velocity())

	if err := sched.RunUntilIdle(context.Background(), animation.FrameInterval); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "final  %s\n", formatTracks(a.Tracks()))
	return nil
}

func formatTracks(tracks []animation.Track) string {
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Property < tracks[j].Property })
	parts := make([]string, len(tracks))
	for i, tr := range tracks {
		parts[i] = fmt.Sprintf("%s=%s", tr.Property, tr.Current)
	}
	return strings.Join(parts, " ")
}
