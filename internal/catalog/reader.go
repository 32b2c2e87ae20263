// Package catalog reads the semicolon-delimited course files the bot
// answers from: the course list, the schedule and the price list.
//
// Files are read in full on every call. Results keep file order; when a
// course name repeats, the later value wins and the entry keeps its first
// position.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"coursebot/internal/model"
)

// Default file names inside the data directory.
const (
	CoursesFile  = "courses.txt"
	ScheduleFile = "schedule.txt"
	PricesFile   = "price-list.txt"
)

// MatchMode selects how a course name is matched in the price list.
type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchExact    MatchMode = "exact"
)

// ParseMatchMode converts a config value into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case MatchContains, MatchExact:
		return m, nil
	case "":
		return MatchExact, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", s)
	}
}

// Reader resolves catalog files inside Dir.
type Reader struct {
	Dir        string
	PriceMatch MatchMode
}

// NewReader returns a Reader for dir using the given price match mode.
func NewReader(dir string, mode MatchMode) *Reader {
	if mode == "" {
		mode = MatchExact
	}
	return &Reader{Dir: dir, PriceMatch: mode}
}

func (r *Reader) CoursesPath() string  { return filepath.Join(r.Dir, CoursesFile) }
func (r *Reader) SchedulePath() string { return filepath.Join(r.Dir, ScheduleFile) }
func (r *Reader) PricesPath() string   { return filepath.Join(r.Dir, PricesFile) }

// Courses lists the course catalog.
func (r *Reader) Courses() ([]model.Course, error) {
	return ListCourses(r.CoursesPath())
}

// Find filters the course catalog by keyword.
func (r *Reader) Find(keyword string) ([]model.Course, error) {
	return FindCourses(r.CoursesPath(), keyword)
}

// Schedule returns every schedule entry, open or not.
func (r *Reader) Schedule() ([]model.ScheduleEntry, error) {
	return LoadSchedule(r.SchedulePath())
}

// PriceTiers looks up a course in the price list using r.PriceMatch.
func (r *Reader) PriceTiers(name string) ([]model.PriceTier, bool, error) {
	return GetPriceTiers(r.PricesPath(), name, r.PriceMatch)
}

// PriceTiersExact looks up a course by its case-folded name, ignoring
// r.PriceMatch.
func (r *Reader) PriceTiersExact(name string) ([]model.PriceTier, bool, error) {
	return GetPriceTiers(r.PricesPath(), name, MatchExact)
}

// PricedCourses lists the course names present in the price list.
func (r *Reader) PricedCourses() ([]string, error) {
	return ListPricedCourses(r.PricesPath())
}

// ListCourses parses a "name;link" file. Every non-blank line must have
// exactly one separator.
func ListCourses(path string) ([]model.Course, error) {
	return FindCourses(path, "")
}

// FindCourses parses a "name;link" file and keeps the courses whose name
// contains keyword, ignoring case. An empty keyword keeps everything.
func FindCourses(path, keyword string) ([]model.Course, error) {
	needle := fold(keyword)
	var out courseSet
	err := scanLines(path, func(n int, line string) (bool, error) {
		parts := strings.Split(line, ";")
		if len(parts) != 2 {
			return false, &ParseError{Path: path, Line: n, Text: line, Reason: "want name;link"}
		}
		name := strings.TrimSpace(parts[0])
		link := strings.TrimSpace(parts[1])
		if needle == "" || strings.Contains(fold(name), needle) {
			out.put(model.Course{Name: name, Link: link})
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out.items, nil
}

// LoadSchedule parses a "name;date" file, splitting on the first separator
// only. Closed courses are returned too; see model.ScheduleEntry.Open.
func LoadSchedule(path string) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	index := map[string]int{}
	err := scanLines(path, func(n int, line string) (bool, error) {
		name, date, ok := strings.Cut(line, ";")
		if !ok {
			return false, &ParseError{Path: path, Line: n, Text: line, Reason: "want name;date"}
		}
		e := model.ScheduleEntry{Name: strings.TrimSpace(name), Date: strings.TrimSpace(date)}
		if i, seen := index[e.Name]; seen {
			out[i] = e
			return false, nil
		}
		index[e.Name] = len(out)
		out = append(out, e)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPriceTiers scans a "name;level:price;..." file for the first course
// matching name under mode. ok is false when nothing matches.
func GetPriceTiers(path, name string, mode MatchMode) (tiers []model.PriceTier, ok bool, err error) {
	want := fold(strings.TrimSpace(name))
	err = scanLines(path, func(n int, line string) (bool, error) {
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			return false, noTiers(path, n, line)
		}
		course := fold(strings.TrimSpace(fields[0]))
		if !matches(course, want, mode) {
			return false, nil
		}
		parsed, perr := parseTiers(path, n, line, fields[1:])
		if perr != nil {
			return false, perr
		}
		tiers, ok = parsed, true
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	return tiers, ok, nil
}

// ListPricedCourses returns the course names of a price list in file order.
func ListPricedCourses(path string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	err := scanLines(path, func(n int, line string) (bool, error) {
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			return false, noTiers(path, n, line)
		}
		if _, err := parseTiers(path, n, line, fields[1:]); err != nil {
			return false, err
		}
		name := strings.TrimSpace(fields[0])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func noTiers(path string, n int, line string) error {
	return &ParseError{Path: path, Line: n, Text: line, Reason: "want name;level:price"}
}

func parseTiers(path string, n int, line string, fields []string) ([]model.PriceTier, error) {
	tiers := make([]model.PriceTier, 0, len(fields))
	for _, f := range fields {
		level, price, ok := strings.Cut(f, ":")
		if !ok {
			return nil, &ParseError{Path: path, Line: n, Text: line, Reason: "want level:price"}
		}
		tiers = append(tiers, model.PriceTier{Level: strings.TrimSpace(level), Price: strings.TrimSpace(price)})
	}
	return tiers, nil
}

func matches(course, want string, mode MatchMode) bool {
	if mode == MatchContains {
		return strings.Contains(course, want)
	}
	return course == want
}

// scanLines calls fn for every non-blank, trimmed line of path with its
// 1-based line number. fn stops the scan by returning true.
func scanLines(path string, fn func(n int, line string) (bool, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stop, err := fn(n, line)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

// fold returns s case-folded for caseless comparison. A Caser keeps
// state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

type courseSet struct {
	items []model.Course
	index map[string]int
}

func (s *courseSet) put(c model.Course) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[c.Name]; ok {
		s.items[i] = c
		return
	}
	s.index[c.Name] = len(s.items)
	s.items = append(s.items, c)
}
