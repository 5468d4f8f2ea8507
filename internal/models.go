package internal

import "strings"

// UserRole is the role marker a message must carry to count as a question.
const UserRole = "user"

// UnknownDay is the bucket for questions without a usable timestamp.
const UnknownDay = "unknown"

// Conversation is one exported chat, kept in its raw decoded form.
type Conversation = *Object

// NormalizedMessage is the canonical per-message record produced by the Normalizer.
type NormalizedMessage struct {
	Role      string
	Text      string
	Timestamp *int64 // epoch seconds, nil when absent or zero
}

// Question is a user message enriched with its conversation title and day bucket.
type Question struct {
	Text      string `json:"text" yaml:"text"`
	Timestamp *int64 `json:"time" yaml:"time"`
	Title     string `json:"title" yaml:"title"`
	Date      string `json:"-" yaml:"-"`
}

// DaySummary groups the questions that fall on one day.
type DaySummary struct {
	Day      string
	Count    int
	Keywords []string
	Items    []Question
}

// DayMeta is the per-day entry of the index, without item bodies.
type DayMeta struct {
	Day      string   `json:"day" yaml:"day"`
	Count    int      `json:"count" yaml:"count"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Index is the top-level summary artifact (index.json).
type Index struct {
	TotalDays      int       `json:"totalDays" yaml:"totalDays"`
	TotalQuestions int       `json:"totalQuestions" yaml:"totalQuestions"`
	Days           []DayMeta `json:"days" yaml:"days"`
}

// DayItem is one question inside a day artifact.
type DayItem struct {
	I     int    `json:"i" yaml:"i"`
	Time  *int64 `json:"time" yaml:"time"`
	Text  string `json:"text" yaml:"text"`
	Title string `json:"title" yaml:"title"`
}

// DayFile is the per-day artifact (day-<day>.json).
type DayFile struct {
	Day      string    `json:"day" yaml:"day"`
	Count    int       `json:"count" yaml:"count"`
	Keywords []string  `json:"keywords" yaml:"keywords"`
	Items    []DayItem `json:"items" yaml:"items"`
}

// Meta returns the index entry for the day.
func (d *DayFile) Meta() DayMeta {
	return DayMeta{Day: d.Day, Count: d.Count, Keywords: d.Keywords}
}

// Filter returns the items whose text contains term, ignoring case. An empty
// term matches every item.
func (d *DayFile) Filter(term string) []DayItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d.Items
	}
	items := make([]DayItem, 0, len(d.Items))
	for _, item := range d.Items {
		if strings.Contains(strings.ToLower(item.Text), term) {
			items = append(items, item)
		}
	}
	return items
}

// NewDayFile converts an aggregated day into its artifact form, numbering items from zero.
func NewDayFile(summary *DaySummary) *DayFile {
	items := make([]DayItem, 0, len(summary.Items))
	for i, q := range summary.Items {
		items = append(items, DayItem{
			I:     i,
			Time:  q.Timestamp,
			Text:  q.Text,
			Title: q.Title,
		})
	}
	keywords := summary.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &DayFile{
		Day:      summary.Day,
		Count:    summary.Count,
		Keywords: keywords,
		Items:    items,
	}
}

// DayFileName returns the artifact file name for a day.
func DayFileName(day string) string {
	return "day-" + day + ".json"
}

// IndexFileName is the name of the index artifact.
const IndexFileName = "index.json"
