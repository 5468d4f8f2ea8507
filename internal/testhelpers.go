package internal

import "strconv"

// TestMessage describes one message of a synthetic conversation.
// A zero Time leaves create_time out.
type TestMessage struct {
	Role string
	Text string
	Time float64
}

// CreateTestMappingConversation builds a mapping-form conversation with nodes
// keyed "n0", "n1", ... in the given order
func CreateTestMappingConversation(title string, msgs ...TestMessage) *Object {
	mapping := NewObject()
	for i, m := range msgs {
		message := NewObject(
			"author", NewObject("role", m.Role),
			"content", NewObject("parts", []any{m.Text}),
		)
		if m.Time != 0 {
			message.Set("create_time", m.Time)
		}
		mapping.Set("n"+strconv.Itoa(i), NewObject("message", message))
	}
	return NewObject("title", title, "mapping", mapping)
}

// CreateTestFlatConversation builds a flat-form conversation
func CreateTestFlatConversation(title string, msgs ...TestMessage) *Object {
	messages := make([]any, 0, len(msgs))
	for _, m := range msgs {
		node := NewObject("role", m.Role, "content", m.Text)
		if m.Time != 0 {
			node.Set("create_time", m.Time)
		}
		messages = append(messages, node)
	}
	return NewObject("title", title, "messages", messages)
}

// CreateTestExport wraps conversations in an export root object
func CreateTestExport(convs ...*Object) *Object {
	items := make([]any, 0, len(convs))
	for _, c := range convs {
		items = append(items, c)
	}
	return NewObject("conversations", items)
}

// CreateTestDayFile builds a day artifact with one question per text.
// Questions get consecutive timestamps starting at 1700000000.
func CreateTestDayFile(day string, texts ...string) *DayFile {
	summary := &DaySummary{Day: day, Count: len(texts)}
	for i, text := range texts {
		ts := int64(1700000000 + i)
		summary.Items = append(summary.Items, Question{Text: text, Timestamp: &ts, Title: "Test Conversation", Date: day})
	}
	summary.Keywords = TopKeywords(QuestionTexts(summary.Items), DefaultTopKeywords)
	return NewDayFile(summary)
}
