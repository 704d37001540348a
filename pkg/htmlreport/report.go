// Package htmlreport renders CTS results as self-contained static HTML pages.
package htmlreport

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/ctsreport/internal/version"
	"github.com/dkoosis/ctsreport/pkg/ctslog"
	msg "github.com/dkoosis/ctsreport/pkg/message"
	"github.com/dkoosis/ctsreport/pkg/paginate"
)

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Vulkan CTS Report"

var (
	//go:embed assets/page.html.tmpl
	pageTemplate string
	//go:embed assets/report.css
	reportCSS string
	//go:embed assets/search.js
	searchJS string
)

var printer = message.NewPrinter(language.English)

var tmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"num": func(v any) string { return printer.Sprintf("%d", v) },
	"pct": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(pageTemplate))

// Options configures a report.
type Options struct {
	Title       string
	GeneratedAt time.Time
	ReportID    string // defaults to a new ULID
	PageSize    int    // defaults to paginate.DefaultPageSize
}

// Row is one rendered table row.
type Row struct {
	CasePath       string
	DurationMicros int64
	Status         ctslog.Status
	Class          ctslog.Class
	Message        template.HTML
}

// NavLinks is paginate.Nav resolved to file links.
type NavLinks struct {
	paginate.Nav
	FirstHref, PrevHref, NextHref, LastHref string
	Links                                   []PageLink
}

// PageLink is one numbered link in the pagination window.
type PageLink struct {
	Num     int
	Href    string
	Current bool
}

// PageData is everything the page template needs.
type PageData struct {
	Title       string
	GeneratedAt string
	ReportID    string
	Version     string
	Stats       ctslog.Stats
	Duration    string
	Chart       template.HTML
	Legend      []Segment
	Nav         *NavLinks // nil for a single-page report
	Rows        []Row
	CSS         template.CSS
	Script      template.JS
}

// Writer renders reports to disk.
type Writer struct {
	opts Options
}

// NewWriter returns a Writer with defaults applied to opts.
func NewWriter(opts Options) *Writer {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}
	if opts.ReportID == "" {
		opts.ReportID = ulid.Make().String()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = paginate.DefaultPageSize
	}
	return &Writer{opts: opts}
}

// ReportID returns the identifier stamped into every page.
func (w *Writer) ReportID() string { return w.opts.ReportID }

// Rows converts records to table rows, normalizing each message.
func Rows(records []ctslog.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			CasePath:       r.CasePath,
			DurationMicros: r.DurationMicros,
			Status:         r.Status,
			Class:          r.Status.Class(),
			Message:        msg.Normalize(r.Message).HTML(),
		}
	}
	return rows
}

func (w *Writer) base(stats ctslog.Stats) (PageData, error) {
	chartSVG, err := PieChartSVG(stats)
	if err != nil {
		return PageData{}, err
	}
	return PageData{
		Title:       w.opts.Title,
		GeneratedAt: w.opts.GeneratedAt.Format("2006-01-02 15:04:05"),
		ReportID:    w.opts.ReportID,
		Version:     version.Version,
		Stats:       stats,
		Duration:    stats.FormatTotalDuration(),
		Chart:       chartSVG,
		Legend:      Segments(stats),
		CSS:         template.CSS(reportCSS), //nolint:gosec // embedded asset
		Script:      template.JS(searchJS),   //nolint:gosec // embedded asset
	}, nil
}

// Render writes one page to out.
func Render(out io.Writer, data PageData) error {
	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// NewNavLinks resolves nav into links to sibling page files named after base.
func NewNavLinks(nav paginate.Nav, base string) *NavLinks {
	href := func(n int) string { return paginate.PageFileName(base, n) }
	links := make([]PageLink, 0, nav.WindowEnd-nav.WindowStart+1)
	for _, p := range nav.Pages() {
		links = append(links, PageLink{Num: p, Href: href(p), Current: p == nav.Page})
	}
	return &NavLinks{
		Nav:       nav,
		FirstHref: href(1),
		PrevHref:  href(nav.Prev()),
		NextHref:  href(nav.Next()),
		LastHref:  href(nav.Total),
		Links:     links,
	}
}

// BaseName strips directory and extension from an output path:
// "out/report.html" becomes "report".
func BaseName(output string) string {
	name := filepath.Base(output)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// WritePaged writes one file per page into dir, named <base>_page_<n>.html,
// and returns the written paths in page order.
func (w *Writer) WritePaged(dir, base string, stats ctslog.Stats, records []ctslog.Record) ([]string, error) {
	data, err := w.base(stats)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	pages := paginate.Split(records, w.opts.PageSize)
	paths := make([]string, 0, len(pages))
	for i, page := range pages {
		n := i + 1
		data.Nav = NewNavLinks(paginate.NewNav(n, len(pages)), base)
		data.Rows = Rows(page)

		path := filepath.Join(dir, paginate.PageFileName(base, n))
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteSingle writes every record into one document at path.
func (w *Writer) WriteSingle(path string, stats ctslog.Stats, records []ctslog.Record) error {
	data, err := w.base(stats)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	data.Rows = Rows(records)
	return writeFile(path, data)
}

func writeFile(path string, data PageData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
