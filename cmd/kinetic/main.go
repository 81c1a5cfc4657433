// Command kinetic inspects and validates motion preset files.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (list, validate).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-kinetic/kinetic/pkg/presets"
	"github.com/go-kinetic/kinetic/pkg/sequence"
)

// Version information set at build time.
var Version = "0.1.0-dev"

// command represents a CLI subcommand.
type command struct {
	name  string
	short string
	run   func(args []string) error
}

var commands = []*command{
	{
		name:  "list",
		short: "List the built-in preset sequences",
		run:   runList,
	},
	{
		name:  "validate",
		short: "Validate preset YAML files",
		run:   runValidate,
	},
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		return
	}
	switch args[0] {
	case "-h", "--help", "help":
		printHelp()
		return
	case "-v", "--version", "version":
		fmt.Printf("kinetic version %s\n", Version)
		return
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			if err := cmd.run(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "kinetic %s: %v\n", cmd.name, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintf(os.Stderr, "kinetic: unknown command %q\n\n", args[0])
	printHelp()
	os.Exit(1)
}

func printHelp() {
	fmt.Println("kinetic inspects and validates motion preset files.")
	fmt.Println()
	fmt.Println("Usage: kinetic <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Println()
	fmt.Println(`Use "kinetic help" to show this message.`)
}

func runList(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: kinetic list")
	}
	seqs, err := presets.Sequences()
	if err != nil {
		return err
	}
	printSequences(seqs)
	return nil
}

func runValidate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: kinetic validate <file>...")
	}
	failed := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		seqs, err := presets.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok (%d sequences)\n", path, len(seqs))
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func printSequences(seqs []sequence.Sequence) {
	for _, s := range seqs {
		fmt.Printf("%s  (%s)\n", s.ID, s.Name)
		for _, step := range s.Steps {
			fmt.Printf("    %-28s %8s", step.Target.Selector, formatDuration(step.Duration))
			if step.Delay > 0 {
				fmt.Printf("  +%s delay", step.Delay)
			}
			fmt.Println()
		}
		if !s.Options.Stagger.IsZero() {
			fmt.Printf("    stagger: each %s, amount %s\n",
				formatDuration(s.Options.Stagger.Each),
				formatDuration(s.Options.Stagger.Amount))
		}
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.String()
}
