package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"coursebot/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestListCoursesKeepsOrderAndTrims(t *testing.T) {
	path := writeFile(t, CoursesFile, "Python;https://x/py\n  Go ;  https://x/go \n")

	got, err := ListCourses(path)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	want := []model.Course{
		{Name: "Python", Link: "https://x/py"},
		{Name: "Go", Link: "https://x/go"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListCourses = %+v, want %+v", got, want)
	}
}

func TestListCoursesDuplicateKeepsFirstPosition(t *testing.T) {
	path := writeFile(t, CoursesFile, "A;1\nB;2\nA;3\n")

	got, err := ListCourses(path)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	want := []model.Course{{Name: "A", Link: "3"}, {Name: "B", Link: "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListCourses = %+v, want %+v", got, want)
	}
}

func TestListCoursesSkipsBlankLinesAndBOM(t *testing.T) {
	path := writeFile(t, CoursesFile, "\ufeffPython;https://x/py\r\n\r\nGo;https://x/go\r\n")

	got, err := ListCourses(path)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Python" || got[1].Link != "https://x/go" {
		t.Fatalf("ListCourses = %+v", got)
	}
}

func TestListCoursesMalformedLine(t *testing.T) {
	cases := []string{
		"Python;https://x/py\nbroken line\n",
		"Python;https://x/py;extra\n",
	}
	for _, content := range cases {
		path := writeFile(t, CoursesFile, content)
		_, err := ListCourses(path)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("ListCourses(%q) err = %v, want ErrParse", content, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line == 0 {
			t.Fatalf("expected ParseError with line number, got %v", err)
		}
	}
}

func TestMissingFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	if _, err := ListCourses(path); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ListCourses err = %v, want ErrUnavailable", err)
	}
	if _, err := LoadSchedule(path); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("LoadSchedule err = %v, want ErrUnavailable", err)
	}
	if _, _, err := GetPriceTiers(path, "x", MatchExact); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetPriceTiers err = %v, want ErrUnavailable", err)
	}
	if _, err := ListCourses(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("underlying os error should stay wrapped, got %v", err)
	}
}

func TestFindCoursesEmptyKeywordMatchesAll(t *testing.T) {
	path := writeFile(t, CoursesFile, "Python Basics;https://x/py\nGo;https://x/go\n")

	all, e := ListCourses(path)
	if e != nil {
		t.Fatalf("ListCourses: %v", e)
	}
	found, e := FindCourses(path, "")
	if e != nil {
		t.Fatalf("FindCourses: %v", e)
	}
	if !reflect.DeepEqual(all, found) {
		t.Fatalf("FindCourses(\"\") = %+v, want %+v", found, all)
	}
}

func TestFindCoursesCaseInsensitive(t *testing.T) {
	path := writeFile(t, CoursesFile, "Python Basics;https://x/py\nGo;https://x/go\nВеб-разработка;https://x/web\n")

	got, e := FindCourses(path, "PY")
	if e != nil {
		t.Fatalf("FindCourses: %v", e)
	}
	if len(got) != 1 || got[0].Name != "Python Basics" {
		t.Fatalf("FindCourses(PY) = %+v", got)
	}

	got, e = FindCourses(path, "ВЕБ")
	if e != nil {
		t.Fatalf("FindCourses: %v", e)
	}
	if len(got) != 1 || got[0].Link != "https://x/web" {
		t.Fatalf("FindCourses(ВЕБ) = %+v", got)
	}

	got, e = FindCourses(path, "rust")
	if e != nil {
		t.Fatalf("FindCourses: %v", e)
	}
	if len(got) != 0 {
		t.Fatalf("FindCourses(rust) = %+v, want none", got)
	}
}

func TestLoadScheduleSplitsOnFirstSeparator(t *testing.T) {
	path := writeFile(t, ScheduleFile, "Python;2024-05-01\nGo;-\nRust; x \nC;from June; evenings\n")

	got, e := LoadSchedule(path)
	if e != nil {
		t.Fatalf("LoadSchedule: %v", e)
	}
	want := []model.ScheduleEntry{
		{Name: "Python", Date: "2024-05-01"},
		{Name: "Go", Date: "-"},
		{Name: "Rust", Date: "x"},
		{Name: "C", Date: "from June; evenings"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadSchedule = %+v, want %+v", got, want)
	}

	var open []string
	for _, entry := range got {
		if entry.Open() {
			open = append(open, entry.Name)
		}
	}
	if !reflect.DeepEqual(open, []string{"Python", "C"}) {
		t.Fatalf("open = %v", open)
	}
}

func TestLoadScheduleMissingSeparator(t *testing.T) {
	path := writeFile(t, ScheduleFile, "Python 2024-05-01\n")
	if _, e := LoadSchedule(path); !errors.Is(e, ErrParse) {
		t.Fatalf("LoadSchedule err = %v, want ErrParse", e)
	}
}

func TestGetPriceTiers(t *testing.T) {
	path := writeFile(t, PricesFile, "Python;Basic:100;Advanced:200\nGo Pro;Basic:300\n")

	tiers, ok, e := GetPriceTiers(path, "python", MatchExact)
	if e != nil || !ok {
		t.Fatalf("GetPriceTiers exact: ok=%v err=%v", ok, e)
	}
	want := []model.PriceTier{{Level: "Basic", Price: "100"}, {Level: "Advanced", Price: "200"}}
	if !reflect.DeepEqual(tiers, want) {
		t.Fatalf("tiers = %+v, want %+v", tiers, want)
	}

	if _, ok, e := GetPriceTiers(path, "go", MatchExact); e != nil || ok {
		t.Fatalf("exact mode should not match substring: ok=%v err=%v", ok, e)
	}

	tiers, ok, e = GetPriceTiers(path, "go", MatchContains)
	if e != nil || !ok || len(tiers) != 1 || tiers[0].Price != "300" {
		t.Fatalf("contains mode: tiers=%+v ok=%v err=%v", tiers, ok, e)
	}
}

func TestGetPriceTiersAbsent(t *testing.T) {
	path := writeFile(t, PricesFile, "Python;Basic:100\n")

	tiers, ok, e := GetPriceTiers(path, "Haskell", MatchContains)
	if e != nil {
		t.Fatalf("GetPriceTiers: %v", e)
	}
	if ok || tiers != nil {
		t.Fatalf("expected absent result, got ok=%v tiers=%+v", ok, tiers)
	}
}

func TestGetPriceTiersFirstMatchWins(t *testing.T) {
	path := writeFile(t, PricesFile, "Go;Basic:1\nGo Advanced;Basic:2\nthis line is not parsed\n")

	tiers, ok, e := GetPriceTiers(path, "go", MatchContains)
	if e != nil || !ok {
		t.Fatalf("GetPriceTiers: ok=%v err=%v", ok, e)
	}
	if tiers[0].Price != "1" {
		t.Fatalf("first match should win, got %+v", tiers)
	}
}

func TestGetPriceTiersMalformedTier(t *testing.T) {
	path := writeFile(t, PricesFile, "Python;Basic 100\n")
	if _, _, e := GetPriceTiers(path, "Python", MatchExact); !errors.Is(e, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", e)
	}
}

func TestPriceLineWithoutTiers(t *testing.T) {
	path := writeFile(t, PricesFile, "Python\nGo;Basic:90\n")
	if _, _, e := GetPriceTiers(path, "Python", MatchExact); !errors.Is(e, ErrParse) {
		t.Fatalf("GetPriceTiers err = %v, want ErrParse", e)
	}
	if _, e := ListPricedCourses(path); !errors.Is(e, ErrParse) {
		t.Fatalf("ListPricedCourses err = %v, want ErrParse", e)
	}
}

func TestReaderPriceTiersExactIgnoresContainsMode(t *testing.T) {
	dir := t.TempDir()
	if e := os.WriteFile(filepath.Join(dir, PricesFile), []byte("Golang;basic:999\nGo;basic:90\n"), 0644); e != nil {
		t.Fatalf("write: %v", e)
	}
	r := NewReader(dir, MatchContains)

	tiers, ok, e := r.PriceTiersExact("Go")
	if e != nil || !ok {
		t.Fatalf("PriceTiersExact = (%v, %v, %v)", tiers, ok, e)
	}
	if !reflect.DeepEqual(tiers, []model.PriceTier{{Level: "basic", Price: "90"}}) {
		t.Fatalf("tiers = %+v, want Go's", tiers)
	}
	if tiers, _, _ := r.PriceTiers("Go"); tiers[0].Price != "999" {
		t.Fatalf("contains lookup should still take the first substring match, got %+v", tiers)
	}
}

func TestListPricedCourses(t *testing.T) {
	path := writeFile(t, PricesFile, "Python;Basic:100\nGo;Basic:200;Pro:400\nPython;Basic:150\n")

	names, e := ListPricedCourses(path)
	if e != nil {
		t.Fatalf("ListPricedCourses: %v", e)
	}
	if !reflect.DeepEqual(names, []string{"Python", "Go"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestParseMatchMode(t *testing.T) {
	cases := []struct {
		in   string
		want MatchMode
		ok   bool
	}{
		{"contains", MatchContains, true},
		{" EXACT ", MatchExact, true},
		{"", MatchExact, true},
		{"fuzzy", "", false},
	}
	for _, tc := range cases {
		got, e := ParseMatchMode(tc.in)
		if (e == nil) != tc.ok || got != tc.want {
			t.Fatalf("ParseMatchMode(%q) = %q, %v", tc.in, got, e)
		}
	}
}

func TestReaderPaths(t *testing.T) {
	dir := t.TempDir()
	r := NewReader(dir, "")
	if r.PriceMatch != MatchExact {
		t.Fatalf("default match mode = %q", r.PriceMatch)
	}
	if err := os.WriteFile(filepath.Join(dir, CoursesFile), []byte("Go;https://x/go\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	courses, e := r.Courses()
	if e != nil || len(courses) != 1 {
		t.Fatalf("Courses = %+v, %v", courses, e)
	}
}
