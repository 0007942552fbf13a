// Package main is the entry point for jot, an inline multi-line text editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/jot/internal/app"
	"github.com/dshills/jot/internal/integration/terminal"
	"github.com/dshills/jot/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	// Configuration, document and script errors surface before the
	// terminal is touched.
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jot: %v\n", err)
		return 1
	}

	// Signals are caught before the terminal changes so a SIGINT during
	// setup still ends in a restore.
	signals := terminal.WatchSignals(nil)
	var guardian *terminal.Guardian
	fail := func(err error) int {
		if guardian != nil {
			_ = guardian.Restore()
		}
		signals.Stop()
		application.Close()
		fmt.Fprintf(os.Stderr, "jot: %v\n", err)
		return 1
	}
	if err := application.SetSignals(signals); err != nil {
		return fail(err)
	}

	guardian, err = terminal.Open(terminal.WithLogger(application.Logger().WithComponent("terminal")))
	if err != nil {
		return fail(err)
	}
	term, err := backend.NewTerminal(terminal.DevicePath)
	if err != nil {
		return fail(err)
	}
	if err := application.SetGuardian(guardian); err != nil {
		return fail(err)
	}
	if err := application.SetBackend(term); err != nil {
		return fail(err)
	}

	err = application.Run()

	var sigErr *app.SignalError
	if errors.As(err, &sigErr) {
		if rerr := terminal.Reraise(sigErr.Signal); rerr != nil {
			fmt.Fprintf(os.Stderr, "jot: %v\n", rerr)
		}
		return 128 + int(sigErr.Signal)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "jot: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses the command line. done is true when the process
// should exit with code without starting a session.
func parseFlags(args []string) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("jot", flag.ContinueOnError)

	var showVersion bool
	fs.BoolVar(&opts.Empty, "e", false, "Start with an empty buffer even if file exists")
	fs.StringVar(&opts.Banner, "b", "", "Banner line shown above the buffer")
	fs.BoolVar(&opts.FromStdin, "p", false, "Read the initial text from standard input")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "jot - inline multi-line text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: jot [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nWithout a file the text is written to standard output.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jot notes.txt               Edit notes.txt\n")
		fmt.Fprintf(os.Stderr, "  jot -b 'Commit message:'    Edit a fresh text, print it on C-n\n")
		fmt.Fprintf(os.Stderr, "  git log -1 | jot -p         Edit piped text\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Printf("jot %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "jot: at most one file may be given\n")
		fs.Usage()
		return opts, 2, true
	}

	return opts, 0, false
}
