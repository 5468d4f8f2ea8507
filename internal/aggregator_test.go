package internal

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	// 1699999200 is 2023-11-14T22:00:00Z, midnight of 2023-11-15 at UTC+2
	tests := []struct {
		name string
		ts   int64
		loc  *time.Location
		want string
	}{
		{"utc", 1700000000, time.UTC, "2023-11-14"},
		{"offset moves the day", 1700000000, plus2, "2023-11-15"},
		{"local midnight starts the new day", 1699999200, plus2, "2023-11-15"},
		{"one second before local midnight", 1699999199, plus2, "2023-11-14"},
		{"same local day, early", 1699913000, plus2, "2023-11-14"},
		{"same local day, late", 1699999000, plus2, "2023-11-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.ts, tt.loc); got != tt.want {
				t.Errorf("FormatDate(%d) = %s, want %s", tt.ts, got, tt.want)
			}
		})
	}
}

func TestFormatDate_NilLocationUsesLocal(t *testing.T) {
	want := time.Unix(1700000000, 0).In(time.Local).Format("2006-01-02")
	if got := FormatDate(1700000000, nil); got != want {
		t.Errorf("FormatDate() = %s, want %s", got, want)
	}
}

func TestAggregate_CountsMatchUserMessages(t *testing.T) {
	convs := []Conversation{
		CreateTestMappingConversation("A",
			TestMessage{Role: "user", Text: "kubernetes pods restart loop", Time: 1700000000},
			TestMessage{Role: "assistant", Text: "check the logs", Time: 1700000010},
			TestMessage{Role: "user", Text: "kubernetes rollback", Time: 1700090000},
		),
		CreateTestFlatConversation("B",
			TestMessage{Role: "user", Text: "no date on this one"},
			TestMessage{Role: "user", Text: " "},
			TestMessage{Role: "user", Text: "kubernetes ingress", Time: 1700000500},
		),
	}

	agg := NewAggregator(WithLocation(time.UTC)).Aggregate(convs)

	n := NewNormalizer()
	want := 0
	for _, c := range convs {
		want += len(n.ExtractUserMessages(c))
	}

	sum := 0
	for _, d := range agg.Days() {
		sum += d.Count
		if d.Count != len(d.Items) {
			t.Errorf("day %s: Count = %d, items = %d", d.Day, d.Count, len(d.Items))
		}
	}
	if sum != want || agg.TotalQuestions() != want {
		t.Errorf("sum of counts = %d, TotalQuestions = %d, want %d", sum, agg.TotalQuestions(), want)
	}
	if want != 4 {
		t.Errorf("user messages = %d, want 4", want)
	}
	if agg.Conversations() != 2 {
		t.Errorf("Conversations() = %d, want 2", agg.Conversations())
	}
}

func TestAggregate_BucketsAndKeywords(t *testing.T) {
	convs := []Conversation{
		CreateTestFlatConversation("Ops",
			TestMessage{Role: "user", Text: "kubernetes pods restart loop", Time: 1700000000},
			TestMessage{Role: "user", Text: "kubernetes ingress timeout", Time: 1700000500},
			TestMessage{Role: "user", Text: "undated question"},
		),
		CreateTestFlatConversation("Next",
			TestMessage{Role: "user", Text: "terraform state lock", Time: 1700090000},
		),
	}

	agg := NewAggregator(WithLocation(time.UTC), WithTopKeywords(2)).Aggregate(convs)

	days := agg.Days()
	gotDays := make([]string, 0, len(days))
	for _, d := range days {
		gotDays = append(gotDays, d.Day)
	}
	wantDays := []string{"2023-11-14", "2023-11-15", UnknownDay}
	if len(gotDays) != len(wantDays) {
		t.Fatalf("Days() = %v, want %v", gotDays, wantDays)
	}
	for i := range wantDays {
		if gotDays[i] != wantDays[i] {
			t.Errorf("Days()[%d] = %s, want %s", i, gotDays[i], wantDays[i])
		}
	}

	first, ok := agg.Day("2023-11-14")
	if !ok {
		t.Fatal("Day(2023-11-14) missing")
	}
	if first.Count != 2 {
		t.Errorf("Count = %d, want 2", first.Count)
	}
	if len(first.Keywords) != 2 || first.Keywords[0] != "kubernetes" {
		t.Errorf("Keywords = %v, want kubernetes first and two entries", first.Keywords)
	}
	if first.Items[0].Title != "Ops" || first.Items[0].Date != "2023-11-14" {
		t.Errorf("item = %+v", first.Items[0])
	}

	unknown, _ := agg.Day(UnknownDay)
	if unknown.Items[0].Timestamp != nil {
		t.Errorf("unknown bucket item has Timestamp %d", *unknown.Items[0].Timestamp)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := NewAggregator().Aggregate(nil)
	if len(agg.Days()) != 0 || agg.TotalQuestions() != 0 {
		t.Errorf("empty aggregation has %d days and %d questions", len(agg.Days()), agg.TotalQuestions())
	}
}
