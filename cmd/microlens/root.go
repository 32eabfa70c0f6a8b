package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/microlens/internal/microlens"
)

const defaultConfig = "scenes/config.yaml"

type rootOptions struct {
	logLevel   string
	logFormat  string
	debug      bool
	cpuProfile string

	profile *os.File
}

// newRootCmd returns the command tree and its options. The caller must call
// opts.teardown once the command returns, whether it failed or not.
func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "microlens",
		Short:         "Find the images of a finite source behind point-mass lenses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&opts.debug, "debug", os.Getenv("DEBUG") != "", "tally terminals and draw the search grid")
	f.StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile to this file")

	cmd.AddCommand(newRunCmd(), newFrameCmd(), newClassifyCmd())
	return cmd, opts
}

// execute runs the command tree and stops profiling even when the command fails.
func execute(ctx context.Context, cmd *cobra.Command, opts *rootOptions) error {
	err := cmd.ExecuteContext(ctx)
	if terr := opts.teardown(); err == nil {
		err = terr
	}
	return err
}

func (o *rootOptions) setup(w io.Writer) error {
	logger, err := newLogger(w, o.logLevel, o.logFormat, o.debug)
	if err != nil {
		return err
	}
	microlens.SetLogger(logger)
	microlens.Debug = o.debug

	if o.cpuProfile != "" {
		f, err := os.Create(o.cpuProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
		o.profile = f
	}
	return nil
}

func (o *rootOptions) teardown() error {
	if o.profile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := o.profile.Close()
	o.profile = nil
	return err
}

func newLogger(w io.Writer, level, format string, debug bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", level, err)
	}
	if debug {
		lvl = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("bad --log-format %q: want text or json", format)
	}
}

func configArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfig
}
