package cmd

import (
	"fmt"

	"github.com/go-drift/motion/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check an animation document",
		Long: `Load an animation document and report every problem in it:
unknown properties, malformed values, unknown curves or spring settings,
references to missing animations and invalid transition contexts.

With no path, the --file document or the project's motion.yaml is used.`,
		Usage: "motion validate [path]",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	var (
		p   *config.Project
		err error
	)
	if len(args) > 0 {
		p, err = config.ResolveFile(args[0])
	} else {
		p, err = loadProject()
	}
	if err != nil {
		return err
	}

	doc := p.Document
	fmt.Fprintf(stdout, "%d animations, %d sequences, %d groups, %d transitions: ok\n",
		len(doc.Animations), len(doc.Sequences), len(doc.Groups), len(doc.Transitions))
	return nil
}
