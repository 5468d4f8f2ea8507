package internal

import (
	"testing"
)

func TestExtractConversations(t *testing.T) {
	conv := NewObject("title", "a")
	tests := []struct {
		name string
		blob any
		want int
	}{
		{"top-level array", []any{conv, conv}, 2},
		{"conversations root", NewObject("conversations", []any{conv}), 1},
		{"items root", NewObject("items", []any{conv, conv}), 2},
		{"data root", NewObject("data", []any{conv}), 1},
		{"non-array root falls through", NewObject("conversations", "nope", "data", []any{conv}), 1},
		{"non-object entries dropped", []any{conv, "x", 3.0, nil}, 1},
		{"unknown shape", NewObject("other", []any{conv}), 0},
		{"scalar", "text", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractConversations(tt.blob)
			if got == nil {
				t.Fatal("ExtractConversations() returned nil")
			}
			if len(got) != tt.want {
				t.Errorf("ExtractConversations() returned %d conversations, want %d", len(got), tt.want)
			}
		})
	}
}

func TestConversationTitle(t *testing.T) {
	tests := []struct {
		name string
		conv Conversation
		want string
	}{
		{"title", NewObject("title", "T", "name", "N"), "T"},
		{"empty title falls back to name", NewObject("title", "", "name", "N"), "N"},
		{"name only", NewObject("name", "N"), "N"},
		{"neither", NewObject("id", "x"), ""},
		{"non-string title", NewObject("title", 1.0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversationTitle(tt.conv); got != tt.want {
				t.Errorf("ConversationTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizer_MappingForm(t *testing.T) {
	conv := CreateTestMappingConversation("Mapping",
		TestMessage{Role: "system", Text: "setup", Time: 100},
		TestMessage{Role: "user", Text: "second question", Time: 300},
		TestMessage{Role: "assistant", Text: "an answer", Time: 200},
		TestMessage{Role: "user", Text: "   ", Time: 250},
		TestMessage{Role: "user", Text: "first question", Time: 150},
	)
	// nodes without a message are skipped
	mapping, _ := conv.Get("mapping")
	mapping.(*Object).Set("root", NewObject("message", nil))
	mapping.(*Object).Set("empty", nil)

	n := NewNormalizer()
	got := n.ExtractUserMessages(conv)

	if len(got) != 2 {
		t.Fatalf("ExtractUserMessages() returned %d messages, want 2", len(got))
	}
	if got[0].Text != "first question" || got[1].Text != "second question" {
		t.Errorf("messages not sorted by time: %q, %q", got[0].Text, got[1].Text)
	}
	for _, m := range got {
		if m.Role != UserRole {
			t.Errorf("Role = %q, want user", m.Role)
		}
	}
	if got[0].Timestamp == nil || *got[0].Timestamp != 150 {
		t.Errorf("Timestamp = %v, want 150", got[0].Timestamp)
	}
}

func TestNormalizer_FlatForm(t *testing.T) {
	conv := CreateTestFlatConversation("Flat",
		TestMessage{Role: "user", Text: "late", Time: 500},
		TestMessage{Role: "assistant", Text: "reply", Time: 10},
		TestMessage{Role: "user", Text: "undated"},
		TestMessage{Role: "user", Text: "early", Time: 20},
	)

	got := NewNormalizer().ExtractUserMessages(conv)

	want := []string{"undated", "early", "late"}
	if len(got) != len(want) {
		t.Fatalf("ExtractUserMessages() returned %d messages, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("message %d = %q, want %q", i, got[i].Text, w)
		}
	}
	if got[0].Timestamp != nil {
		t.Errorf("undated message Timestamp = %d, want nil", *got[0].Timestamp)
	}
}

func TestNormalizer_FlatItemsAndNullMapping(t *testing.T) {
	conv := NewObject(
		"mapping", nil,
		"items", []any{
			NewObject("author", NewObject("role", "user"), "text", "from items"),
		},
	)

	got := NewNormalizer().ExtractUserMessages(conv)
	if len(got) != 1 || got[0].Text != "from items" {
		t.Fatalf("ExtractUserMessages() = %+v, want one message from items", got)
	}
}

func TestNormalizer_NonObjectMappingUsesMessages(t *testing.T) {
	for _, mapping := range []any{false, 0.0, "", []any{}} {
		conv := NewObject(
			"mapping", mapping,
			"messages", []any{
				NewObject("role", "user", "content", "Is this kept?"),
			},
		)

		got := NewNormalizer().ExtractUserMessages(conv)
		if len(got) != 1 || got[0].Text != "Is this kept?" {
			t.Errorf("mapping %#v: ExtractUserMessages() = %+v, want the flat message", mapping, got)
		}
	}
}

func TestNormalizer_AuthorWithoutRoleDropped(t *testing.T) {
	conv := NewObject("mapping", NewObject(
		"a", NewObject("message", NewObject(
			"author", NewObject("name", "plugin"),
			"metadata", NewObject("role", "user"),
			"content", NewObject("parts", []any{"not from the user"}),
		)),
		"b", NewObject("message", NewObject(
			"author", NewObject("role", "user"),
			"content", NewObject("parts", []any{"from the user"}),
		)),
	))

	got := NewNormalizer().ExtractUserMessages(conv)
	if len(got) != 1 || got[0].Text != "from the user" {
		t.Errorf("ExtractUserMessages() = %+v, want only the user message", got)
	}
}

func TestNormalizer_AssistantAlwaysExcluded(t *testing.T) {
	conv := CreateTestFlatConversation("",
		TestMessage{Role: "assistant", Text: "What is a question from the assistant?", Time: 1},
		TestMessage{Role: "Assistant", Text: "still not a user", Time: 2},
	)

	if got := NewNormalizer().ExtractUserMessages(conv); len(got) != 0 {
		t.Errorf("ExtractUserMessages() = %+v, want none", got)
	}
}
