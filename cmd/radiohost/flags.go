package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliOptions struct {
	topic       string
	baseURL     string
	timeout     time.Duration
	jsonOutput  bool
	showVersion bool
}

var errNoTopic = errors.New("-topic is required")

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	flags := flag.NewFlagSet("radiohost", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.topic, "topic", "", "topic of the episode to generate")
	flags.StringVar(&opts.baseURL, "server", "", "generation service base URL (overrides remote.base_url)")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "give up after this long")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print snapshots as JSON lines")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if opts.showVersion {
		return opts, nil
	}

	if opts.topic == "" && flags.NArg() > 0 {
		opts.topic = strings.Join(flags.Args(), " ")
	}
	if strings.TrimSpace(opts.topic) == "" {
		return opts, errNoTopic
	}
	if opts.timeout <= 0 {
		return opts, fmt.Errorf("-timeout must be positive, got %s", opts.timeout)
	}
	return opts, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "version: %s\ncommit: %s\ndate: %s\nruntime: %s/%s\n",
		version, commit, date, runtime.GOOS, runtime.GOARCH)
}
