package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "curves",
		Short: "List and sample easing curves",
		Long: `List the named easing curves, or sample the given ones.

Each curve is printed with its eased progress at evenly spaced points
from 0 to 1. Use --samples to change the number of intervals.`,
		Usage: "motion curves [--samples N] [name...]",
		Run:   runCurves,
	})
}

func runCurves(args []string) error {
	samples := 4
	var names []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--samples":
			if i+1 >= len(args) {
				return fmt.Errorf("--samples requires a number")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid --samples %q", args[i+1])
			}
			samples = n
			i++
		default:
			names = append(names, args[i])
		}
	}
	if len(names) == 0 {
		names = animation.EasingNames()
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		e, ok := animation.LookupEasing(name)
		if !ok {
			return fmt.Errorf("unknown curve %q", name)
		}
		fmt.Fprintf(stdout, "%-*s  %s\n", width, name, sampleCurve(e, samples))
	}
	return nil
}

func sampleCurve(e animation.Easing, samples int) string {
	parts := make([]string, samples+1)
	for i := range parts {
		parts[i] = strconv.FormatFloat(e.Solve(float64(i)/float64(samples)), 'f', 3, 64)
	}
	return strings.Join(parts, " ")
}
