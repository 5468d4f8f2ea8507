package internal

import (
	"sort"
	"time"
)

// FormatDate renders the calendar date of ts (epoch seconds) in loc as YYYY-MM-DD.
func FormatDate(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("2006-01-02")
}

// Aggregator groups user questions by calendar day
type Aggregator struct {
	normalizer  *Normalizer
	location    *time.Location
	topKeywords int
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithLocation sets the time zone used to derive day buckets.
func WithLocation(loc *time.Location) AggregatorOption {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithTopKeywords sets how many keywords are kept per day.
func WithTopKeywords(n int) AggregatorOption {
	return func(a *Aggregator) {
		a.topKeywords = n
	}
}

// NewAggregator creates an Aggregator using local time and DefaultTopKeywords.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		normalizer:  NewNormalizer(),
		location:    time.Local,
		topKeywords: DefaultTopKeywords,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregation is the result of one Aggregate call.
type Aggregation struct {
	buckets        map[string]*DaySummary
	totalQuestions int
	conversations  int
}

// Aggregate normalizes every conversation and buckets its questions by day.
// Questions keep their per-conversation order, conversations their input order.
func (a *Aggregator) Aggregate(conversations []Conversation) *Aggregation {
	agg := &Aggregation{
		buckets:       make(map[string]*DaySummary),
		conversations: len(conversations),
	}

	for _, conv := range conversations {
		title := ConversationTitle(conv)
		for _, msg := range a.normalizer.ExtractUserMessages(conv) {
			day := UnknownDay
			if msg.Timestamp != nil {
				day = FormatDate(*msg.Timestamp, a.location)
			}

			bucket, ok := agg.buckets[day]
			if !ok {
				bucket = &DaySummary{Day: day}
				agg.buckets[day] = bucket
			}
			bucket.Items = append(bucket.Items, Question{
				Text:      msg.Text,
				Timestamp: msg.Timestamp,
				Title:     title,
				Date:      day,
			})
			bucket.Count++
			agg.totalQuestions++
		}
	}

	for _, bucket := range agg.buckets {
		bucket.Keywords = TopKeywords(QuestionTexts(bucket.Items), a.topKeywords)
	}
	LogDebug("aggregated %d question(s) from %d conversation(s) into %d day(s)",
		agg.totalQuestions, agg.conversations, len(agg.buckets))
	return agg
}

// Days returns the day summaries sorted by day string.
func (g *Aggregation) Days() []*DaySummary {
	days := make([]*DaySummary, 0, len(g.buckets))
	for _, bucket := range g.buckets {
		days = append(days, bucket)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})
	return days
}

// Day returns the summary for one day.
func (g *Aggregation) Day(day string) (*DaySummary, bool) {
	bucket, ok := g.buckets[day]
	return bucket, ok
}

// TotalQuestions returns the number of questions across all days.
func (g *Aggregation) TotalQuestions() int {
	return g.totalQuestions
}

// Conversations returns how many conversations were processed.
func (g *Aggregation) Conversations() int {
	return g.conversations
}
