package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/geoweights/logging"
	"github.com/katalvlaran/geoweights/weights"
)

var (
	showHelp = flag.Bool("help", false, "")

	configPath = flag.String("config", "weights.toml", "")
	outPath    = flag.String("out", "", "")
	summary    = flag.Bool("summary", false, "")
	logLevel   = flag.String("loglevel", "", "")
)

const helpMessage = `
gdaweights builds spatial weights from a CSV table and writes them as GAL,
GWT or KWT.

Usage: gdaweights [options] table.csv

  The first CSV row holds column names. Coordinates, the ID field and block
  variables are named in the TOML configuration; queen and rook on a CSV
  use Voronoi contiguity of the coordinates.

	-config     =string   TOML configuration (default "weights.toml")
	-out        =string   Output path, overriding [output] path
	-loglevel   =string   debug, info, warn or error, overriding [logging] level
	-summary    (flag)    Print the degree summary to stdout
	-h, -help   (flag)    Show help message
`

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = func() {
		fmt.Print(helpMessage)
	}
	flag.Parse()

	if code, stop := checkArgs(*showHelp, flag.Args()); stop {
		flag.Usage()
		os.Exit(code)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "gdaweights: %v\n", err)
		os.Exit(1)
	}
}

// checkArgs decides whether to stop before running and with which exit
// status: 0 for -help, 2 for a usage error.
func checkArgs(help bool, args []string) (int, bool) {
	switch {
	case help:
		return 0, true
	case len(args) != 1:
		return 2, true
	}

	return 0, false
}

func run(tablePath string) error {
	cfg, err := weights.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if cfg.Output.Path == "" {
		return fmt.Errorf("no output path: set [output] path or -out")
	}
	log := logging.Setup(cfg.Logging)
	defer logging.Close()

	tb, err := readTable(tablePath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := weights.Build(ctx, cfg, weights.Input{Table: tb}, log)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if err := res.Save(cfg.Output.Path, cfg.Layer); err != nil {
		return err
	}

	st, err := os.Stat(cfg.Output.Path)
	if err != nil {
		return err
	}
	log.Info("weights written",
		"path", cfg.Output.Path,
		"format", res.Format.String(),
		"size", humanize.Bytes(uint64(st.Size())))
	if *summary {
		fmt.Print(res.Summary)
	}

	return nil
}
