package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/etnz/fuzzydate"
	"github.com/etnz/fuzzydate/date"
	"github.com/etnz/fuzzydate/renderer"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v2"
)

// mergeJob is the content of a merge job file.
type mergeJob struct {
	Main        string            `yaml:"main"`
	Aux         string            `yaml:"aux"`
	DateMain    string            `yaml:"date_main"`
	DateAux     string            `yaml:"date_aux"`
	By          []string          `yaml:"by"`
	Features    []string          `yaml:"features"`
	Tolerance   string            `yaml:"tolerance"`
	Debug       bool              `yaml:"debug"`
	KeepOrder   bool              `yaml:"keep_order"`
	Output      string            `yaml:"output"`
	OmitMissing bool              `yaml:"omit_missing"`
	MainSheet   string            `yaml:"main_sheet"`
	AuxSheet    string            `yaml:"aux_sheet"`
	Paths       map[string]string `yaml:"paths"`
}

// readJob decodes a job file, unknown keys are errors.
func readJob(path string) (mergeJob, error) {
	var job mergeJob
	content, err := os.ReadFile(path)
	if err != nil {
		return job, err
	}
	if err := yaml.UnmarshalStrict(content, &job); err != nil {
		return job, fmt.Errorf("invalid job file %q: %w", path, err)
	}
	return job, nil
}

// pathsFlag collects repeated -path name=expression flags.
type pathsFlag map[string]string

func (p pathsFlag) String() string {
	var list []string
	for k, v := range p {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return strings.Join(list, ",")
}

func (p pathsFlag) Set(s string) error {
	name, expr, ok := strings.Cut(s, "=")
	if !ok || name == "" || expr == "" {
		return fmt.Errorf("want name=expression, got %q", s)
	}
	p[name] = expr
	return nil
}

// mergeCmd holds the flags for the 'merge' subcommand.
type mergeCmd struct {
	main        string
	aux         string
	dateMain    string
	dateAux     string
	by          string
	features    string
	tolerance   string
	debug       bool
	keepOrder   bool
	output      string
	mainSheet   string
	auxSheet    string
	omitMissing bool
	job         string
	paths       pathsFlag
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "join two tables on the closest dates" }
func (*mergeCmd) Usage() string {
	return `fz merge -main <file> -aux <file> -date-main <column> -date-aux <column> [-by <columns>] [-features <columns>] [-tolerance <duration>] [-debug] [-keep-order] [-o <file>]
fz merge -job <file.yaml> [flags]

  Adds to every row of the main table the values of the aux rows closest in date.
  See 'fz topic merge'.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	c.paths = make(pathsFlag)
	f.StringVar(&c.main, "main", "", "main table (.jsonl, .csv or .xlsx)")
	f.StringVar(&c.aux, "aux", "", "aux table (.jsonl, .csv or .xlsx)")
	f.StringVar(&c.dateMain, "date-main", "", "date column of the main table")
	f.StringVar(&c.dateAux, "date-aux", "", "date column of the aux table")
	f.StringVar(&c.by, "by", "", "comma separated join columns, present in both tables")
	f.StringVar(&c.features, "features", "", "comma separated aux columns to merge, all by default")
	f.StringVar(&c.tolerance, "tolerance", "", "widest date distance of the tolerant match (e.g. 10d, 2w, 36h). Defaults to "+EnvTolerance)
	f.BoolVar(&c.debug, "debug", false, "keep the columns of every matching strategy")
	f.BoolVar(&c.keepOrder, "keep-order", false, "keep the main rows in their input order")
	f.StringVar(&c.output, "o", "", "write the result to this file instead of printing it")
	f.StringVar(&c.mainSheet, "main-sheet", "", "sheet of an xlsx main table, the first one by default")
	f.StringVar(&c.auxSheet, "aux-sheet", "", "sheet of an xlsx aux table, the first one by default")
	f.BoolVar(&c.omitMissing, "omit-missing", false, "leave missing values out of jsonl output")
	f.StringVar(&c.job, "job", "", "read the options from a YAML job file, flags override it")
	f.Var(c.paths, "path", "name=jsonpath column extracted from a jsonl aux table, can be repeated")
}

// resolve returns the job to run: the job file if any, overridden by the flags that were set.
func (c *mergeCmd) resolve(f *flag.FlagSet) (mergeJob, error) {
	var job mergeJob
	if c.job != "" {
		var err error
		if job, err = readJob(c.job); err != nil {
			return job, err
		}
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	override := func(name string) bool { return c.job == "" || set[name] }

	if override("main") {
		job.Main = c.main
	}
	if override("aux") {
		job.Aux = c.aux
	}
	if override("date-main") {
		job.DateMain = c.dateMain
	}
	if override("date-aux") {
		job.DateAux = c.dateAux
	}
	if override("by") {
		job.By = splitList(c.by)
	}
	if override("features") {
		job.Features = splitList(c.features)
	}
	if override("tolerance") {
		job.Tolerance = c.tolerance
	}
	if override("debug") {
		job.Debug = c.debug
	}
	if override("keep-order") {
		job.KeepOrder = c.keepOrder
	}
	if override("o") {
		job.Output = c.output
	}
	if override("omit-missing") {
		job.OmitMissing = c.omitMissing
	}
	if override("main-sheet") {
		job.MainSheet = c.mainSheet
	}
	if override("aux-sheet") {
		job.AuxSheet = c.auxSheet
	}
	if override("path") {
		job.Paths = c.paths
	}
	if job.Tolerance == "" {
		job.Tolerance = config.Tolerance
	}

	var missing []string
	for name, v := range map[string]string{"main": job.Main, "aux": job.Aux, "date-main": job.DateMain, "date-aux": job.DateAux} {
		if v == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return job, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return job, nil
}

func (c *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	job, err := c.resolve(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in merge options: %v\n", err)
		return subcommands.ExitUsageError
	}
	tolerance, err := date.ParseTolerance(job.Tolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing tolerance: %v\n", err)
		return subcommands.ExitUsageError
	}

	main, err := fuzzydate.Load(job.Main, fuzzydate.DecodeOptions{Dates: []string{job.DateMain}, Sheet: job.MainSheet})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading main table: %v\n", err)
		return subcommands.ExitFailure
	}
	aux, err := fuzzydate.Load(job.Aux, fuzzydate.DecodeOptions{Dates: []string{job.DateAux}, Paths: job.Paths, Sheet: job.AuxSheet})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading aux table: %v\n", err)
		return subcommands.ExitFailure
	}
	slog.Debug("tables loaded", "main", job.Main, "main_rows", main.Len(), "aux", job.Aux, "aux_rows", aux.Len())

	start := time.Now()
	merged, err := fuzzydate.Merge(main, aux, fuzzydate.MergeOptions{
		DateMain:  job.DateMain,
		DateAux:   job.DateAux,
		JoinBy:    job.By,
		Features:  job.Features,
		Tolerance: tolerance,
		Debug:     job.Debug,
		KeepOrder: job.KeepOrder,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error merging %q into %q: %v\n", job.Aux, job.Main, err)
		return subcommands.ExitFailure
	}
	slog.Debug("tables merged", "rows", merged.Len(), "columns", len(merged.Names()), "elapsed", time.Since(start))

	if job.Output != "" {
		if err := fuzzydate.Save(job.Output, merged, fuzzydate.EncodeOptions{OmitMissing: job.OmitMissing}); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", job.Output, err)
			return subcommands.ExitFailure
		}
		slog.Info("merged table written", "file", job.Output, "rows", merged.Len())
		return subcommands.ExitSuccess
	}

	view := renderer.NewTable("Merged", merged)
	view.Notes = []string{
		fmt.Sprintf("main: %s, aux: %s", job.Main, job.Aux),
		"tolerance: " + date.FormatTolerance(tolerance),
	}
	if len(job.By) > 0 {
		view.Notes = append(view.Notes, "join: "+strings.Join(job.By, ", "))
	}
	tables := []*renderer.Table{view}
	if !job.Debug {
		unmatched, err := unmatchedRows(merged, main)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing unmatched rows: %v\n", err)
			return subcommands.ExitFailure
		}
		tables = append(tables, renderer.NewTable("Rows without any aux value", unmatched))
	}
	printMarkdown(renderer.RenderTables(tables...))
	return subcommands.ExitSuccess
}

// unmatchedRows returns the rows of merged where every column added to main is missing.
func unmatchedRows(merged, main *fuzzydate.Table) (*fuzzydate.Table, error) {
	var added []string
	for _, name := range merged.Names() {
		if !main.Has(name) {
			added = append(added, name)
		}
	}
	var rows []fuzzydate.Row
	for _, r := range merged.Rows() {
		if len(added) > 0 && !slices.ContainsFunc(added, func(name string) bool { return !r[name].IsMissing() }) {
			rows = append(rows, r)
		}
	}
	return fuzzydate.FromRows(merged.Names(), rows...)
}
