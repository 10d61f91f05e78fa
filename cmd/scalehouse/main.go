package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/scalehouse/scalehouse"
	"github.com/scalehouse/scalehouse/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, args, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Println("scalehouse " + Version)
		os.Exit(ExitSuccess)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, fmtArgs ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", fmtArgs...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitCodeFor(err))
		}
	}
	mergeFlags(cfg, flags)

	res, err := scalehouse.LoadResources(cfg.Data.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}

	conv, err := scalehouse.NewConverter(res,
		scalehouse.WithCompanyHeader(cfg.Company.Name, cfg.Company.Info))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}

	if flags.output != "" && len(args) == 1 {
		args = append(args, flags.output)
	}

	out := os.Stdout
	if flags.common.quiet {
		devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if devNull != nil {
			defer devNull.Close()
			out = devNull
		}
	}

	if err := run(context.Background(), args, conv, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// mergeFlags overlays explicit flags on top of the loaded config.
func mergeFlags(cfg *config.Config, flags *convertFlags) {
	if flags.dataDir != "" {
		cfg.Data.Dir = flags.dataDir
	}
	if flags.company.name != "" {
		cfg.Company.Name = flags.company.name
	}
	if flags.company.info != "" {
		cfg.Company.Info = flags.company.info
	}
}
