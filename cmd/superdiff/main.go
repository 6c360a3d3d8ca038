// Package main provides the superdiff command-line interface.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oklog/ulid/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/superdiff-go/superdiff/internal/config"
	"github.com/superdiff-go/superdiff/internal/version"
	"github.com/superdiff-go/superdiff/pkg/pool"
	"github.com/superdiff-go/superdiff/pkg/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	log := logrus.New()
	log.SetOutput(stderr)

	flags := pflag.NewFlagSet("superdiff", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	levThreshold := flags.IntP("lev-threshold", "t", config.DefaultLevThreshold, "0 means exact equality, else bounded edit distance")
	lineThreshold := flags.IntP("line-threshold", "l", config.DefaultLineThreshold, "minimum trimmed-line length to anchor a block")
	blockThreshold := flags.IntP("block-threshold", "b", config.DefaultBlockThreshold, "minimum accepted block size")
	workerThreads := flags.Int("worker-threads", config.DefaultWorkerThreads, "number of concurrent scan workers")
	verbose := flags.BoolP("verbose", "v", false, "enable progress and summary on the diagnostic stream")
	reportingMode := flags.String("reporting-mode", config.DefaultReportingMode, "text or json")
	configPath := flags.String("config", os.Getenv("SUPERDIFF_CONFIG"), "optional JSON configuration file")
	showVersion := flags.Bool("version", false, "print version information and exit")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(stderr, "Configuration error:", err)
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	set := map[string]bool{}
	flags.Visit(func(f *pflag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(*configPath, config.FlagOverrides{
		LevThreshold:   levThreshold,
		LineThreshold:  lineThreshold,
		BlockThreshold: blockThreshold,
		WorkerThreads:  workerThreads,
		ReportingMode:  reportingMode,
		Verbose:        verbose,
		Set:            set,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Configuration error:", err)
		return 2
	}

	log.SetLevel(logrus.WarnLevel)
	if cfg.Verbose {
		log.SetLevel(logrus.InfoLevel)
	}
	runLog := log.WithField("run", ulid.Make().String())

	paths, err := resolvePaths(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintln(stderr, "Standard input read failure:", err)
		return 2
	}

	runLog.WithField("count", len(paths)).Info("resolved file list")

	m, err := pool.Run(context.Background(), paths, pool.Options{
		LevThreshold:   cfg.LevThreshold,
		LineThreshold:  cfg.LineThreshold,
		BlockThreshold: cfg.BlockThreshold,
		Workers:        cfg.WorkerThreads,
		OnUnreadable: func(path string, cause error) {
			runLog.WithField("path", path).WithError(cause).Warn("skipping unreadable file")
		},
	})
	if err != nil {
		fmt.Fprintln(stderr, "Configuration error:", err)
		return 2
	}

	rep := report.Build(m.Clusters())

	if cfg.Verbose && cfg.ReportingMode == config.ReportingText {
		printSummaryTable(stderr, rep)
	}

	switch cfg.ReportingMode {
	case config.ReportingJSON:
		data, err := rep.JSON()
		if err != nil {
			fmt.Fprintln(stderr, "Configuration error:", err)
			return 2
		}
		fmt.Fprintln(stdout, string(data))
	default:
		fmt.Fprintln(stdout, rep.Text())
	}

	return 0
}

// resolvePaths expands glob metacharacters in the positional arguments with
// doublestar, passing plain paths through untouched. If no paths remain
// after expansion, it falls back to reading one path per line from stdin
// until EOF.
func resolvePaths(args []string, stdin *os.File) ([]string, error) {
	var expanded []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			expanded = append(expanded, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expand glob %q: %w", arg, err)
		}
		expanded = append(expanded, matches...)
	}
	if len(expanded) > 0 {
		return expanded, nil
	}

	var fromStdin []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fromStdin = append(fromStdin, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fromStdin, nil
}

func printSummaryTable(w *os.File, rep report.Report) {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"File", "Blocks"})
	for path, summary := range rep.Files {
		table.Append([]string{path, fmt.Sprintf("%d", summary.CountBlocks)})
	}
	table.Render()
}
