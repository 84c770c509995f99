// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/asm14/config"
	"github.com/ezrec/asm14/driver"
	"github.com/ezrec/asm14/object"
)

type options struct {
	config  string
	out     string
	base    int
	jobs    int
	keep    bool
	symbols bool
	verbose bool
}

// settings merges the configuration file and the command line flags.
func (opt *options) settings(cmd *cobra.Command) (cfg config.Config, err error) {
	cfg = config.Default()
	if len(opt.config) != 0 {
		cfg, err = config.Load(opt.config, nil)
		if err != nil {
			return
		}
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = opt.out
	}
	if flags.Changed("base") {
		cfg.BaseAddress = opt.base
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opt.jobs
	}
	if flags.Changed("keep") {
		cfg.KeepExpanded = opt.keep
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opt.verbose
	}

	err = cfg.Validate()
	return
}

func newCommand() (cmd *cobra.Command) {
	opt := &options{}

	cmd = &cobra.Command{
		Use:           "asm14 [flags] file...",
		Short:         "Assemble sources for the 14-bit teaching CPU",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := opt.settings(cmd)
			if err != nil {
				return
			}

			rep := &reporter{
				Output:  cmd.ErrOrStderr(),
				Symbols: cmd.OutOrStdout(),
				Color:   term.IsTerminal(int(os.Stderr.Fd())),
				Dump:    opt.symbols,
			}

			drv := &driver.Driver{
				Verbose: cfg.Verbose,
				Config:  cfg,
				FS:      object.DirFS(""),
				Report:  rep.Report,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = drv.Run(ctx, args)
			if rep.Failed > 0 {
				err = ErrFailed(rep.Failed)
			}
			return
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opt.config, "config", "c", "", "Starlark configuration file")
	flags.StringVarP(&opt.out, "out", "o", "", "Output directory for artifacts")
	flags.IntVarP(&opt.base, "base", "b", 0, "Address of the first instruction")
	flags.IntVarP(&opt.jobs, "jobs", "j", 1, "Files to assemble concurrently")
	flags.BoolVarP(&opt.keep, "keep", "k", true, "Keep the macro expanded .am file")
	flags.BoolVarP(&opt.symbols, "symbols", "s", false, "Dump the symbol table of each file")
	flags.BoolVarP(&opt.verbose, "verbose", "v", false, "Verbose mode")

	return
}

func main() {
	log.SetFlags(0)

	err := newCommand().ExecuteContext(context.Background())
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
