// Package cmd implements the motion CLI commands.
//
// The root command dispatches to subcommands (play, scrub, curves,
// validate). Global flags select the document and the log level.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "motion",
	Short: "motion - an animation timing engine",
	Long: `motion plays the animations, sequences, groups and transitions
described in a motion.yaml document and publishes every frame to the
configured sinks (MQTT, WebSocket, terminal).

Use "motion <command> --help" for more information about a command.`,
	Usage: "motion [--file PATH] [--verbose] <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// documentPath is the --file flag.
var documentPath string

var logger = newLogger(os.Stderr, false)

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	verbose := false
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "motion version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			verbose = true
		case "-f", "--file":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a path", arg)
			}
			documentPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--file=") {
				documentPath = strings.TrimPrefix(arg, "--file=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	logger = newLogger(os.Stderr, verbose)
	errors.SetHandler(&errors.LogHandler{Verbose: verbose, Logger: &logger, Window: time.Second})

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil {
		logger.Error().Err(err).Str("command", cmdName).Msg("failed")
		return err
	}
	return nil
}

// loadProject reads the document named by --file, or motion.yaml from the
// nearest project root.
func loadProject() (*config.Project, error) {
	if documentPath != "" {
		return config.ResolveFile(documentPath)
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return nil, err
	}
	return config.Resolve(root)
}

func printHelp(cmd *Command) {
	w := stdout
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --file PATH      Animation document (default: motion.yaml in the project root)")
	fmt.Fprintln(w, "  --verbose            Debug logging")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  motion play card --term     Play the card animation in a terminal preview")
	fmt.Fprintln(w, "  motion scrub card --steps 5 Print card at six evenly spaced fractions")
	fmt.Fprintln(w, "  motion curves ease-out      Sample the ease-out curve")
	fmt.Fprintln(w, "  motion validate             Check motion.yaml")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
