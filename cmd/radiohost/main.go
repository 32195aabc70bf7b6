// Command radiohost generates one episode from the command line: it submits
// the topic, follows the session until the job ends and prints the result.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/krishna-deora/Synthetic-Radio-Host/config"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/session"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/transport"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

func main() {
	os.Exit(cliMain(os.Args[1:]))
}

func cliMain(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.showVersion {
		printVersion(os.Stdout)
		return 0
	}

	log.InitLogger()
	defer log.GetLogger().Sync()
	_ = log.SetLevel("warn")

	if !config.LoadConfig() {
		return 1
	}
	conf := config.Conf
	if opts.baseURL != "" {
		conf.Remote.BaseUrl = opts.baseURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := transport.NewFromConfig(conf)
	ctrl := session.New(client)
	defer ctrl.Close()

	return run(ctx, ctrl, opts, client.DownloadURL, os.Stdout)
}

// run submits the topic and prints snapshots until a terminal state, the
// timeout or ctx ends it. It returns the process exit code.
func run(ctx context.Context, ctrl *session.Controller, opts cliOptions, downloadURL func(string) string, out io.Writer) int {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	snapshots, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	if err := ctrl.Submit(ctx, opts.topic); err != nil {
		printSnapshot(out, ctrl.Snapshot(), opts.jsonOutput)
		return 1
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "gave up: %v\n", ctx.Err())
			ctrl.Reset()
			return 1
		case s, ok := <-snapshots:
			if !ok {
				return 1
			}
			if s.Status == types.LifecycleIdle && s.JobID == "" && s.Topic == "" {
				continue
			}
			printSnapshot(out, s, opts.jsonOutput)
			switch s.Status {
			case types.LifecycleCompleted:
				if !opts.jsonOutput {
					printResult(out, s.Result, downloadURL)
				}
				return 0
			case types.LifecycleFailed:
				return 1
			}
		}
	}
}

func printSnapshot(out io.Writer, s types.Snapshot, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(out).Encode(s)
		return
	}
	switch s.Status {
	case types.LifecycleProcessing:
		fmt.Fprintf(out, "[%3d%%] %s\n", s.Progress, s.Message)
	case types.LifecycleFailed:
		fmt.Fprintf(out, "failed: %s\n", s.Error)
	case types.LifecycleIdle:
		if s.Error != "" {
			fmt.Fprintln(out, s.Error)
		}
	case types.LifecycleCompleted:
		fmt.Fprintln(out, "completed")
	}
}

func printResult(out io.Writer, r *types.Result, downloadURL func(string) string) {
	if r == nil {
		return
	}
	fmt.Fprintf(out, "audio: %s\n", downloadURL(r.Filename))

	if eval, err := r.DecodeEvaluation(); err == nil && eval != nil {
		fmt.Fprintf(out, "score: %.1f\n", eval.OverallScore)
	}
	if prompt, err := r.DecodeImprovementPrompt(); err == nil && prompt != nil && prompt.Prompt != "" {
		fmt.Fprintf(out, "improvement prompt: %s\n", prompt.Prompt)
	}
}
