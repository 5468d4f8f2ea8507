package internal

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/iksnae/question-digest/testutil"
)

func sampleDay() *DayFile {
	ts := int64(1700000000)
	return &DayFile{
		Day:      "2023-11-14",
		Count:    2,
		Keywords: []string{"channels"},
		Items: []DayItem{
			{I: 0, Time: &ts, Text: "Are <b>channels</b> & mutexes equivalent?", Title: "Go"},
			{I: 1, Time: nil, Text: "channels again", Title: ""},
		},
	}
}

func TestDirSink_RoundTrip(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	sink := NewDirSink(dir)
	day := sampleDay()

	if err := sink.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if err := sink.WriteDay(day); err != nil {
		t.Fatalf("WriteDay() error = %v", err)
	}

	got, err := sink.LoadDay(day.Day)
	if err != nil {
		t.Fatalf("LoadDay() error = %v", err)
	}
	if !reflect.DeepEqual(got, day) {
		t.Errorf("LoadDay() = %+v, want %+v", got, day)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestDirSink_Missing(t *testing.T) {
	sink := NewDirSink(filepath.Join(testutil.CreateTempDir(t), "nothing"))

	if _, err := sink.LoadIndex(); !errors.Is(err, ErrNoIndex) {
		t.Errorf("LoadIndex() error = %v, want ErrNoIndex", err)
	}
	if _, err := sink.LoadDay("2023-11-14"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("LoadDay() error = %v, want ErrDayNotFound", err)
	}
	if _, err := sink.ReadDay("../../etc/passwd"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("ReadDay() with a path error = %v, want ErrDayNotFound", err)
	}
}

func TestDirSink_ResetKeepsUnrelatedFiles(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "day-2020-01-01.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewDirSink(dir).Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if got := testutil.ListFiles(t, dir); !reflect.DeepEqual(got, []string{"notes.txt"}) {
		t.Errorf("files after Reset() = %v", got)
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	if _, err := sink.Index(); !errors.Is(err, ErrNoIndex) {
		t.Errorf("Index() before write error = %v, want ErrNoIndex", err)
	}

	day := sampleDay()
	if err := sink.WriteDay(day); err != nil {
		t.Fatalf("WriteDay() error = %v", err)
	}
	if err := sink.WriteIndex(&Index{TotalDays: 1, TotalQuestions: 2, Days: []DayMeta{day.Meta()}}); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}

	data, err := sink.Day(day.Day)
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	decoded, err := DecodeDay(data)
	if err != nil {
		t.Fatalf("DecodeDay() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, day) {
		t.Errorf("decoded day = %+v", decoded)
	}
	if _, err := sink.Day("2000-01-01"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("Day() error = %v, want ErrDayNotFound", err)
	}

	names, files := sink.Files()
	if !reflect.DeepEqual(names, []string{"day-2023-11-14.json", IndexFileName}) {
		t.Errorf("Files() names = %v", names)
	}
	if len(files) != 2 {
		t.Errorf("Files() returned %d files", len(files))
	}

	if err := sink.Reset(); err != nil {
		t.Fatal(err)
	}
	if names, _ := sink.Files(); len(names) != 0 {
		t.Errorf("Files() after Reset() = %v", names)
	}
}

func TestEncodeDay(t *testing.T) {
	data, err := EncodeDay(sampleDay())
	if err != nil {
		t.Fatalf("EncodeDay() error = %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "<b>channels</b> & mutexes") {
		t.Errorf("HTML characters were escaped: %s", s)
	}
	if !strings.Contains(s, `"time":null`) {
		t.Errorf("missing timestamp should encode as null: %s", s)
	}
	if strings.Contains(s, "\n") {
		t.Errorf("day artifact should be compact: %s", s)
	}
	if !strings.HasPrefix(s, `{"day":"2023-11-14","count":2,"keywords":["channels"],"items":[{"i":0,"time":1700000000,`) {
		t.Errorf("unexpected field order: %s", s)
	}
}

func TestEncodeIndex(t *testing.T) {
	data, err := EncodeIndex(&Index{TotalDays: 0, TotalQuestions: 0, Days: []DayMeta{}})
	if err != nil {
		t.Fatalf("EncodeIndex() error = %v", err)
	}
	want := "{\n  \"totalDays\": 0,\n  \"totalQuestions\": 0,\n  \"days\": []\n}"
	if string(data) != want {
		t.Errorf("EncodeIndex() = %q, want %q", data, want)
	}
}
