// Package aoc holds helpers for solving Advent of Code puzzles: a runner
// that checks each part against the sample in its doc comment, and a small
// network analysis engine (triangles, maximal cliques) over undirected
// graphs.
package aoc

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
)

type sample struct {
	input string
	want  string
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

// parseSample extracts a sample from a doc comment of the form
//
//	/*
//	want=<answer>
//
//	<input lines>
//	*/
//
// The input may be omitted, in which case the previous sample's input is
// reused.
func parseSample(comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	if m := sampleRx.FindStringSubmatch(text); m != nil {
		return sample{want: m[1], input: m[2]}, true
	}
	return sample{}, false
}

func extractSamples(src []byte) (map[string]sample, error) {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "solver.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing source to extract samples: %w", err)
	}
	var lastInput string
	samples := make(map[string]sample)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			s, ok := parseSample(c.Text)
			if ok {
				s.input = Or(s.input, lastInput)
				samples[fd.Name.Name] = s
				lastInput = s.input
				break
			}
		}
	}
	return samples, nil
}

// Puzzle is embedded (as a pointer) in solver structs. It gives each part
// access to its input, a logger and a context bounded by -timeout.
type Puzzle struct {
	year       int
	day        day
	SampleMode bool

	solver  partSolver
	samples map[string]sample
	ctx     context.Context
	log     *slog.Logger
	input   []byte
}

// Context returns the context for the running part. It carries the logger
// and, if -timeout is set, a deadline.
func (p *Puzzle) Context() context.Context {
	if p.ctx == nil {
		return WithLogger(context.Background(), p.Logger())
	}
	return p.ctx
}

func (p *Puzzle) Logger() *slog.Logger {
	if p.log == nil {
		return slog.Default()
	}
	return p.log
}

// Input returns the sample input in sample mode, and the real puzzle input
// otherwise.
func (p *Puzzle) Input() []byte {
	if p.SampleMode {
		return []byte(p.Sample().input)
	}
	if p.input == nil {
		name := filepath.Join(flagInputs, strconv.Itoa(p.year), strconv.Itoa(p.day.day)+".input")
		url := fmt.Sprintf("https://adventofcode.com/%d/day/%d/input", p.year, p.day.day)
		p.input = MustGet(fileOrFetch(p.Context(), name, url))
	}
	return p.input
}

func (p *Puzzle) Reader() io.Reader {
	return bytes.NewReader(p.Input())
}

func (p *Puzzle) Scanner() *bufio.Scanner {
	return bufio.NewScanner(p.Reader())
}

// ForLinesY calls onLine for each line of input. y is the row number,
// starting with 0.
func (p *Puzzle) ForLinesY(onLine func(y int, line string)) {
	s := p.Scanner()
	y := -1
	for s.Scan() {
		y++
		onLine(y, s.Text())
	}
	MustDo(s.Err())
}

// ForLines calls onLine for each line of input.
func (p *Puzzle) ForLines(onLine func(line string)) {
	p.ForLinesY(func(_ int, line string) { onLine(line) })
}

// Debug logs at debug level, which -debug enables.
func (p *Puzzle) Debug(msg string, args ...any) {
	p.Logger().Debug(msg, args...)
}

func (p *Puzzle) Sample() sample {
	sample, ok := p.samples[p.solver.Name]
	if !ok {
		log.Fatalf("no sample found for %v", p.solver.Name)
	}
	return sample
}

type day struct {
	day   int
	parts []partSolver
}

type partSolver struct {
	fn   func() any
	Part string
	Name string
}

// extractMethods finds the methods named D{day}p{part} on x, grouped by
// day. They must have the signature func() any.
func extractMethods(x any) (map[int]day, error) {
	rx := regexp.MustCompile(`^D(\d+)p(\d+.*)$`)
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("solver: got %T; want pointer to struct", x)
	}
	vt := v.Type()
	byDays := map[int][]partSolver{}
	for i := 0; i < vt.NumMethod(); i++ {
		mn := vt.Method(i).Name
		matches := rx.FindStringSubmatch(mn)
		if len(matches) != 3 {
			continue
		}
		fn, ok := v.Method(i).Interface().(func() any)
		if !ok {
			return nil, fmt.Errorf("solver: %s has type %v; want func() any", mn, v.Method(i).Type())
		}
		d := Int(matches[1])
		byDays[d] = append(byDays[d], partSolver{
			fn:   fn,
			Part: matches[2],
			Name: mn,
		})
	}
	days := make(map[int]day, len(byDays))
	for d, parts := range byDays {
		slices.SortFunc(parts, func(i, j partSolver) int {
			return strings.Compare(i.Part, j.Part)
		})
		days[d] = day{parts: parts, day: d}
	}
	return days, nil
}

var (
	flagCurDay     int
	flagPart       string
	flagDebug      bool
	flagOnlySample bool
	flagSkipSample bool
	flagTimeout    time.Duration
	flagInputs     string
)

func init() {
	flag.IntVar(&flagCurDay, "day", -1, "day to run")
	flag.BoolVar(&flagOnlySample, "sample", false, "only run sample")
	flag.BoolVar(&flagSkipSample, "skip-sample", false, "skip sample")
	flag.BoolVar(&flagDebug, "debug", false, "debug logging")
	flag.StringVar(&flagPart, "part", "", "part to run")
	flag.DurationVar(&flagTimeout, "timeout", 0, "per-part deadline; 0 means none")
	flag.StringVar(&flagInputs, "inputs", "inputs", "directory caching puzzle inputs")
}

var initFlags = sync.OnceFunc(flag.Parse)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runPart runs one part in one mode. It reports whether the run should
// continue.
func (p *Puzzle) runPart(ps partSolver) bool {
	ctx := WithLogger(context.Background(), p.log)
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}
	p.ctx = ctx
	defer func() { p.ctx = nil }()

	if !p.SampleMode {
		// Prime the input so fetching is not timed.
		p.Input()
	}
	t0 := time.Now()
	got := ps.fn()
	elapsed := time.Since(t0).Round(time.Microsecond)
	if p.SampleMode {
		want := p.Sample().want
		if fmt.Sprint(got) != want {
			fmt.Printf("part %s: %v ❌; want %v\n", ps.Part, got, want)
			return false
		}
		fmt.Printf("part %s sample: %v ✅ (%v) \n", ps.Part, got, elapsed)
		return true
	}
	fmt.Printf("part %s: %v (took %v) \n", ps.Part, got, elapsed)
	return true
}

func runDay(slvr any, year int, d day, samples map[string]sample, logger *slog.Logger) {
	p := Puzzle{
		year:    year,
		day:     d,
		samples: samples,
	}
	fmt.Println("Running day", d.day)
	reflect.ValueOf(slvr).Elem().FieldByName("Puzzle").Set(reflect.ValueOf(&p))
	for _, ps := range d.parts {
		if flagPart != "" && ps.Part != flagPart {
			continue
		}
		p.solver = ps
		p.log = logger.With("day", d.day, "part", ps.Part)
		for _, sm := range []bool{true, false} {
			if (!sm && flagOnlySample) || (sm && flagSkipSample) {
				continue
			}
			p.SampleMode = sm
			if !p.runPart(ps) {
				return
			}
		}
	}
}

// Run parses flags and runs the solver methods of slvr for year. src is the
// solver's own source, from which samples are read. slvr must be a pointer
// to a struct embedding *Puzzle.
func Run(year int, src []byte, slvr any) {
	initFlags()
	logger := newLogger()
	slog.SetDefault(logger)

	samples := MustGet(extractSamples(src))
	days, err := extractMethods(slvr)
	if err != nil {
		log.Fatal(err)
	}

	if flagCurDay != -1 {
		d, ok := days[flagCurDay]
		if !ok {
			log.Fatalf("no day %d", flagCurDay)
		}
		runDay(slvr, year, d, samples, logger)
		return
	}

	dayNums := maps.Keys(days)
	slices.Sort(dayNums)
	for _, d := range dayNums {
		runDay(slvr, year, days[d], samples, logger)
		fmt.Println()
	}
}

var session = sync.OnceValues(func() (string, error) {
	if s := os.Getenv("AOC_SESSION"); s != "" {
		return s, nil
	}
	b, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), "keys", "aoc.session"))
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
})

var httpClient = &http.Client{Timeout: 30 * time.Second}

// fileOrFetch returns the contents of filename, downloading it from url and
// caching it there if it does not exist yet.
func fileOrFetch(ctx context.Context, filename, url string) ([]byte, error) {
	if f, err := os.ReadFile(filename); err == nil {
		return f, nil
	}
	Logger(ctx).Info("fetching input", "url", url)
	body, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filename, body, 0600); err != nil {
		return nil, err
	}
	return body, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	sess, err := session()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: sess})
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %v", url, res.Status)
	}
	return io.ReadAll(res.Body)
}

// MustDo panics if err is non-nil.
func MustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Int returns the int value of s, ignoring surrounding space.
func Int(s string) int {
	return MustGet(strconv.Atoi(strings.TrimSpace(s)))
}

// Or returns the first non-zero value in list.
func Or[T any](list ...T) T {
	for _, v := range list {
		if !reflect.ValueOf(&v).Elem().IsZero() {
			return v
		}
	}
	var zero T
	return zero
}
