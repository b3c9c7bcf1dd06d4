// Package main provides an interactive CLI that steps through recorded
// trajectories, showing what the monitor decides at every step.
//
// Usage:
//
//	go run ./integrationtest/cli [fixture-dir] [settings.yaml]
//
// The fixture directory defaults to integrationtest/replay/testdata. The
// optional settings file configures logging and turns on use_diff or
// markdown_predictions for every fixture. Logs go to stderr and, unless the
// settings name another file, to .logs/cli_replay.log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rickchristie/trajwatch/config"
	"github.com/rickchristie/trajwatch/integrationtest/replay"
	"github.com/rickchristie/trajwatch/internal/logging"
	"github.com/rickchristie/trajwatch/render"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const defaultFixtureDir = "integrationtest/replay/testdata"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	fixtureDir := defaultFixtureDir
	if len(os.Args) > 1 {
		fixtureDir = os.Args[1]
	}

	paths, err := filepath.Glob(filepath.Join(fixtureDir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list fixtures: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fixtures found in %s", fixtureDir)
	}

	var fixtures []*replay.Fixture
	for _, p := range paths {
		f, err := replay.LoadFixture(p)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
	}

	settings := config.DefaultConfig()
	if len(os.Args) > 2 {
		settings, err = config.Load(os.Args[2])
		if err != nil {
			return err
		}
	}
	for _, f := range fixtures {
		f.Config.UseDiff = f.Config.UseDiff || settings.UseDiff
		f.Config.MarkdownPredictions = f.Config.MarkdownPredictions ||
			settings.MarkdownPredictions
	}

	if settings.Logging.File == "" {
		settings.Logging.File = filepath.Join(".logs", "cli_replay.log")
	}
	logger := logging.New(settings.Logging)
	defer logger.Sync()

	rl, err := readline.New(
		colorCyan +
			"Enter selection (or 'q' to quit): " +
			colorReset)
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	printMenu(fixtures)

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf(
					"\n%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			fmt.Printf(
				"%sGoodbye!%s\n",
				colorGreen, colorReset)
			return nil
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(fixtures) {
			fmt.Printf(
				"%sInvalid selection. "+
					"Please enter 1-%d.%s\n\n",
				colorRed, len(fixtures), colorReset)
			continue
		}

		if err := stepThrough(rl, fixtures[num-1], logger); err != nil {
			fmt.Fprintf(os.Stderr,
				"%sError: %v%s\n",
				colorRed, err, colorReset)
		}

		fmt.Printf("\n%s%s%s\n\n",
			colorDim,
			strings.Repeat("-", 60),
			colorReset)
	}
}

func printMenu(fixtures []*replay.Fixture) {
	fmt.Printf("%s%sRecorded Trajectories:%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow,
		strings.Repeat("=", 22),
		colorReset)
	for i, f := range fixtures {
		fmt.Printf("  %s%d.%s %s%s%s - %s\n",
			colorCyan, i+1, colorReset,
			colorWhite, f.Name, colorReset,
			f.Description)
	}
	fmt.Println()
}

// stepThrough replays f, pausing after every step until the user asks for
// the next one.
func stepThrough(
	rl *readline.Instance,
	f *replay.Fixture,
	logger *zap.Logger,
) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Printf(
				"\n%sReceived interrupt, "+
					"cancelling...%s\n",
				colorYellow, colorReset)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Printf("\n%sReplaying: %s%s\n",
		colorGreen, f.Name, colorReset)

	paused := true
	onStep := func(s replay.StepResult) {
		printStep(s)
		if !paused {
			return
		}
		oldPrompt := rl.Config.Prompt
		rl.SetPrompt(
			colorCyan +
				"[Enter] next, 'c' continue, 'q' stop: " +
				colorReset)
		input, err := rl.Readline()
		rl.SetPrompt(oldPrompt)
		switch {
		case err != nil, strings.TrimSpace(input) == "q":
			cancel()
		case strings.TrimSpace(input) == "c":
			paused = false
		}
	}

	res, err := replay.Run(ctx, f,
		replay.WithLogger(logger),
		replay.OnStep(onStep),
	)
	if err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Println()
	if reason := res.StopReason(); reason != "" {
		fmt.Printf("%s%sEarly stop:%s %s\n",
			colorBold, colorYellow, colorReset, reason)
	}
	fmt.Printf("%sReport:%s %s\n", colorBold, colorReset, res.ReportPath)

	sections, err := render.ReadSections(res.ReportPath)
	if err != nil {
		return err
	}
	fmt.Printf("%sSections rendered:%s %d\n", colorBold, colorReset, len(sections))
	return nil
}

func printStep(s replay.StepResult) {
	fmt.Printf("\n%s%sStep %d%s %s(%s)%s\n",
		colorBold, colorWhite, s.Step, colorReset,
		colorDim, s.Action.Type, colorReset)
	fmt.Printf("  %sLabel:%s %s\n", colorCyan, colorReset, s.Label)
	if s.Reminder != "" {
		fmt.Printf("  %sReminder:%s %s\n",
			colorYellow, colorReset, strings.TrimSpace(s.Reminder))
	}
	if s.Repetition != "" {
		fmt.Printf("  %sLoop:%s %s\n", colorRed, colorReset, s.Repetition)
	}
}
