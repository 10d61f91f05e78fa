package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared with the daemon.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// companyFlags holds the company header overrides.
type companyFlags struct {
	name string
	info string
}

// convertFlags holds all flags for the converter.
type convertFlags struct {
	common  commonFlags
	company companyFlags
	dataDir string
	output  string
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addCompanyFlags adds company header flags to a FlagSet.
func addCompanyFlags(fs *flag.FlagSet, f *companyFlags) {
	fs.StringVar(&f.name, "company-name", "", "override the company name in the page header")
	fs.StringVar(&f.info, "company-info", "", "override the company contact line in the page header")
}

// parseFlags parses command flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("scalehouse", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "directory holding fonts and logo")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: input with .pdf extension)")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addCompanyFlags(fs, &f.company)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the command usage to w.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: scalehouse [flags] <mail.html> [output.pdf]

Convert a sale-notification mail into a PDF document.

Flags:
  -c, --config string        config file name or path
  -d, --data-dir string      directory holding fonts and logo
  -o, --output string        output PDF path (default: input with .pdf extension)
      --company-name string  override the company name in the page header
      --company-info string  override the company contact line in the page header
  -q, --quiet                only show errors
  -v, --verbose              show detailed progress
      --version              print version and exit`)
}
