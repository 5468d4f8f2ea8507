package internal

import (
	"fmt"
	"os"
	"regexp"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDay reports whether day is a day token artifacts can be named after.
func ValidDay(day string) bool {
	return day == UnknownDay || dayPattern.MatchString(day)
}

// Sink receives the artifacts of one pipeline run.
type Sink interface {
	// Reset discards the output of any earlier run.
	Reset() error
	WriteDay(day *DayFile) error
	WriteIndex(index *Index) error
}

// Result holds everything a run produces, ready to be written to a Sink.
type Result struct {
	Index         *Index
	Days          []*DayFile
	Conversations int
}

// Day returns the artifact for one day.
func (r *Result) Day(day string) (*DayFile, bool) {
	for _, d := range r.Days {
		if d.Day == day {
			return d, true
		}
	}
	return nil, false
}

// Pipeline runs parse, normalize and aggregate over one export
type Pipeline struct {
	aggregator *Aggregator
}

// NewPipeline creates a Pipeline; options configure its Aggregator.
func NewPipeline(opts ...AggregatorOption) *Pipeline {
	return &Pipeline{aggregator: NewAggregator(opts...)}
}

// ReadExport reads a whole export file into memory.
func ReadExport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	return data, nil
}

// Run parses data and builds the index and day artifacts. source names the
// input in errors and logs. Only unparseable input is an error.
func (p *Pipeline) Run(source string, data []byte) (*Result, error) {
	blob, err := ParseExport(source, data)
	if err != nil {
		return nil, err
	}

	conversations := ExtractConversations(blob)
	if len(conversations) == 0 {
		LogWarn("No conversations found in %s", source)
	}

	agg := p.aggregator.Aggregate(conversations)
	return BuildResult(agg), nil
}

// BuildResult converts an Aggregation into index and day artifacts.
func BuildResult(agg *Aggregation) *Result {
	summaries := agg.Days()
	result := &Result{
		Index: &Index{
			TotalDays:      len(summaries),
			TotalQuestions: agg.TotalQuestions(),
			Days:           make([]DayMeta, 0, len(summaries)),
		},
		Days:          make([]*DayFile, 0, len(summaries)),
		Conversations: agg.Conversations(),
	}

	for _, summary := range summaries {
		day := NewDayFile(summary)
		result.Days = append(result.Days, day)
		result.Index.Days = append(result.Index.Days, day.Meta())
	}
	return result
}

// Emit writes a result to sink: reset, one write per day, then the index.
func (p *Pipeline) Emit(result *Result, sink Sink) error {
	if err := sink.Reset(); err != nil {
		return fmt.Errorf("failed to reset output: %w", err)
	}
	for _, day := range result.Days {
		if err := sink.WriteDay(day); err != nil {
			return fmt.Errorf("failed to write day %s: %w", day.Day, err)
		}
	}
	if err := sink.WriteIndex(result.Index); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// MultiSink fans every write out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Reset() error {
	for _, s := range m {
		if err := s.Reset(); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) WriteDay(day *DayFile) error {
	for _, s := range m {
		if err := s.WriteDay(day); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) WriteIndex(index *Index) error {
	for _, s := range m {
		if err := s.WriteIndex(index); err != nil {
			return err
		}
	}
	return nil
}
