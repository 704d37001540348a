// ctsreport converts Vulkan CTS results into browsable HTML reports.
//
// Usage:
//
//	ctsreport [flags] <input_log_or_xml> <output_html>
//	ctsreport browse <input_log_or_xml>
//	ctsreport version
//
// The input is either a raw CTS log with embedded <TestCaseResult> fragments
// or a well-formed XML document containing them. By default the report is
// split into pages of 100 cases written to cts_report/<output>_page_<n>.html;
// --single writes one file at <output>.
//
// After writing, a statistics summary is printed in one of these formats:
//
//	terminal  styled Unicode output (default when TTY)
//	llm       plain text (default when piped)
//	json      structured JSON for automation
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/ctsreport/internal/config"
	"github.com/dkoosis/ctsreport/internal/logging"
	"github.com/dkoosis/ctsreport/internal/version"
	"github.com/dkoosis/ctsreport/pkg/browse"
	"github.com/dkoosis/ctsreport/pkg/ctslog"
	"github.com/dkoosis/ctsreport/pkg/htmlreport"
	"github.com/dkoosis/ctsreport/pkg/mapper"
	"github.com/dkoosis/ctsreport/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad invocation. They exit with 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "ctsreport: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Usage: %s\n", root.UseLine())
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue), errors.Is(err, ctslog.ErrInputNotFound):
		return 2
	default:
		return 1
	}
}

// options holds the raw flag values shared by the commands.
type options struct {
	single     bool
	outDir     string
	pageSize   int
	title      string
	format     string
	theme      string
	top        int
	configPath string
	debug      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ctsreport [flags] <input_log_or_xml> <output_html>",
		Short:         "Convert Vulkan CTS results into an HTML report",
		Args:          usageArgs(cobra.ExactArgs(2)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, stderr)
			if err != nil {
				return err
			}
			return generate(args[0], args[1], opts.single, cfg, stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.IntVar(&opts.pageSize, "page-size", config.DefaultPageSize, "test cases per page")
	pf.StringVar(&opts.theme, "theme", config.DefaultTheme, "terminal theme: default, orca, mono")
	pf.StringVar(&opts.configPath, "config", "", "path to a .ctsreport.yaml file")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	f := root.Flags()
	f.BoolVar(&opts.single, "single", false, "write one HTML file at <output_html> instead of pages")
	f.StringVar(&opts.outDir, "out-dir", config.DefaultOutDir, "directory for paginated pages")
	f.StringVar(&opts.title, "title", config.DefaultTitle, "report title")
	f.StringVar(&opts.format, "format", config.DefaultFormat, "summary format: auto, terminal, llm, json")
	f.IntVar(&opts.top, "top", config.DefaultTop, "number of slowest cases in the summary (0 disables)")

	root.AddCommand(newBrowseCmd(opts, stderr), newVersionCmd(stdout))
	return root
}

func newBrowseCmd(opts *options, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <input_log_or_xml>",
		Short: "Page through test cases in the terminal",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, stderr)
			if err != nil {
				return err
			}
			result, err := ctslog.ReadFile(args[0])
			if err != nil {
				return err
			}
			return browse.Run(cmd.Context(), result.Records, cfg.PageSize, render.ThemeByName(cfg.Theme))
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(stdout, version.String())
		},
	}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// resolveConfig merges flags explicitly set on cmd with env and file config.
func resolveConfig(cmd *cobra.Command, opts *options, stderr io.Writer) (*config.ResolvedConfig, error) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	flags := config.CliFlags{
		ConfigPath:  opts.configPath,
		OutDir:      opts.outDir,
		PageSize:    opts.pageSize,
		Title:       opts.title,
		Theme:       opts.theme,
		Format:      opts.format,
		Top:         opts.top,
		Debug:       opts.debug,
		OutDirSet:   changed("out-dir"),
		PageSizeSet: changed("page-size"),
		TitleSet:    changed("title"),
		ThemeSet:    changed("theme"),
		FormatSet:   changed("format"),
		TopSet:      changed("top"),
		DebugSet:    changed("debug"),
	}
	cfg, err := config.ResolveConfig(flags, logging.New(stderr, opts.debug))
	if err != nil {
		return nil, usageError{err}
	}
	return cfg, nil
}

// generate runs the report pipeline: read, detect, parse, aggregate, write, summarize.
func generate(input, output string, single bool, cfg *config.ResolvedConfig, stdout io.Writer) error {
	log := logging.New(stdout, cfg.Debug)
	if cfg.ConfigPath != "" {
		log.Debug().Str("path", cfg.ConfigPath).Msg("using config file")
	}

	result, err := ctslog.ReadFile(input)
	if detected(err) {
		log.Info().Msgf("Detected %s", result.Format.Describe())
	}
	if err != nil {
		return err
	}
	log.Debug().Int("records", len(result.Records)).Msg("parsed input")

	stats := ctslog.ComputeStats(result.Records)
	w := htmlreport.NewWriter(htmlreport.Options{Title: cfg.Title, PageSize: cfg.PageSize})

	files, err := writeReport(w, output, single, cfg.OutDir, stats, result.Records, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "[OK] HTML report saved to: %s\n\n", files[0])
	patterns := mapper.FromStats(stats, result.Records, mapper.Options{TopSlowest: cfg.Top, MaxFailed: cfg.MaxFailed})
	info := render.ReportInfo{ID: w.ReportID(), InputFormat: result.Format.String(), Files: files}
	r := render.ForFormat(resolveFormat(cfg.Format, stdout), render.ThemeByName(cfg.Theme), termWidth(stdout), info)
	fmt.Fprint(stdout, r.Render(patterns))
	return nil
}

// writeReport writes the HTML output and returns the written files, first page first.
func writeReport(w *htmlreport.Writer, output string, single bool, outDir string, stats ctslog.Stats, records []ctslog.Record, log zerolog.Logger) ([]string, error) {
	if single {
		if err := w.WriteSingle(output, stats, records); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	paths, err := w.WritePaged(outDir, htmlreport.BaseName(output), stats, records)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		log.Debug().Str("path", p).Msg("wrote page")
	}
	return paths, nil
}

// detected reports whether the input was read far enough for the format to be known.
func detected(err error) bool {
	var pe *ctslog.ParseError
	return err == nil || errors.Is(err, ctslog.ErrNoEntries) || errors.As(err, &pe)
}

// resolveFormat maps "auto" to terminal for TTYs and llm otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80 columns.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
