/*
Shrdlite starts an interactive blocks-world planning session.

It reads in a scenario file and starts a session against the world it
describes. The interpreter then reads commands from stdin, plans each one
against the current world snapshot, and prints the resulting action sequence
to stdout until the "quit" command is given or input ends.

Usage:

	shrdlite [flags]

The flags are:

	-v, --version
		Give the current version of shrdlite and then exit.

	-w, --world FILE
		Use the provided scenario file for the world. Defaults to the file
		"world.toml" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input, even if launched
		in a tty with stdin and stdout.

	-c, --command COMMANDS
		Immediately run the given command(s) at start. Can be multiple
		commands separated by the ";" character.

Once a session has started, input is parsed as a short sentence describing
an action to take in the blocks world, e.g. "put the red ball on the table".
To exit the interpreter, type "quit".
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	shrdlite "github.com/shrdlite/planner"
	"github.com/shrdlite/planner/internal/input"
	"github.com/shrdlite/planner/internal/planerr"
	"github.com/shrdlite/planner/internal/surface"
	"github.com/shrdlite/planner/internal/version"
	"github.com/shrdlite/planner/internal/worldfile"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem reading input during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	worldFile    = pflag.StringP("world", "w", "world.toml", "The scenario file that contains the definition of the world")
	forceDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand = pflag.StringP("command", "c", "", "Execute the given commands immediately at start and leave the interpreter open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	world, err := worldfile.Load(*worldFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	eng, err := shrdlite.New(world, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	cmdReader, err := newCommandReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer cmdReader.Close()

	if err := runUntilQuit(eng, cmdReader, startCommands); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}

// commandReader is the subset of input.DirectCommandReader and
// input.InteractiveCommandReader that the session loop needs.
type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}

func newCommandReader(forceDirect bool) (commandReader, error) {
	if !forceDirect {
		return input.NewInteractiveReader()
	}
	return input.NewDirectReader(os.Stdin), nil
}

// runUntilQuit executes startCommands in order and then reads further
// commands from cmdReader, planning and printing each, until "quit" is
// entered or input ends.
func runUntilQuit(eng *shrdlite.Engine, cmdReader commandReader, startCommands []string) error {
	for _, c := range startCommands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if isQuit(c) {
			return nil
		}
		runCommand(eng, c)
	}

	for {
		line, err := cmdReader.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if isQuit(line) {
			return nil
		}

		runCommand(eng, line)
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return true
	default:
		return false
	}
}

func runCommand(eng *shrdlite.Engine, line string) {
	cmd, err := surface.Parse(line)
	if err != nil {
		fmt.Printf("I don't understand: %s\n", err.Error())
		return
	}

	plan, err := eng.Plan(cmd)
	if err != nil {
		var perr *planerr.Error
		if errors.As(err, &perr) {
			fmt.Println(perr.GameMessage())
			return
		}
		fmt.Printf("could not plan: %s\n", err.Error())
		return
	}

	fmt.Println(plan.Summary)
}
