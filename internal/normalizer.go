package internal

import (
	"sort"
)

// conversationRoots are tried in order when the export is not itself a list.
var conversationRoots = []string{"conversations", "items", "data"}

// ExtractConversations finds the conversation list inside a decoded export.
// Unknown shapes yield an empty list.
func ExtractConversations(blob any) []Conversation {
	list, ok := blob.([]any)
	if !ok {
		for _, root := range conversationRoots {
			if arr, found := lookup(blob, root); found {
				if list, ok = arr.([]any); ok {
					break
				}
			}
		}
	}

	conversations := make([]Conversation, 0, len(list))
	for _, item := range list {
		if conv, ok := item.(*Object); ok {
			conversations = append(conversations, conv)
		}
	}
	return conversations
}

// ConversationTitle returns the conversation's title, falling back to its name.
func ConversationTitle(conv Conversation) string {
	if title, ok := lookupString(conv, "title"); ok && title != "" {
		return title
	}
	if name, ok := lookupString(conv, "name"); ok {
		return name
	}
	return ""
}

// Normalizer converts raw conversations into ordered user messages
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// ExtractUserMessages returns the conversation's user messages with non-empty
// text, sorted by timestamp. Messages without a timestamp sort as 0 and keep
// their relative order.
func (n *Normalizer) ExtractUserMessages(conv Conversation) []NormalizedMessage {
	var (
		nodes []any
		chain []roleExtractor
	)

	if mapping, ok := lookup(conv, "mapping"); ok && isObject(mapping) {
		nodes = n.mappingNodes(mapping)
		chain = mappingRoleChain
	} else {
		nodes = n.flatNodes(conv)
		chain = flatRoleChain
	}

	messages := make([]NormalizedMessage, 0, len(nodes))
	for _, node := range nodes {
		msg := n.normalizeNode(node, chain)
		if msg.Role != UserRole || msg.Text == "" {
			continue
		}
		messages = append(messages, msg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return sortKey(messages[i].Timestamp) < sortKey(messages[j].Timestamp)
	})
	return messages
}

// mappingNodes unwraps the values of a mapping graph: node.message when
// present, otherwise the node itself.
func (n *Normalizer) mappingNodes(mapping any) []any {
	obj, ok := mapping.(*Object)
	if !ok {
		return nil
	}

	nodes := make([]any, 0, obj.Len())
	for _, value := range obj.Values() {
		if value == nil {
			continue
		}
		if msg, ok := lookup(value, "message"); ok && msg != nil {
			value = msg
		}
		nodes = append(nodes, value)
	}
	return nodes
}

// flatNodes returns the first message list found under "messages" or "items".
func (n *Normalizer) flatNodes(conv Conversation) []any {
	for _, key := range []string{"messages", "items"} {
		if raw, ok := lookup(conv, key); ok {
			if arr, ok := raw.([]any); ok {
				return arr
			}
		}
	}
	return nil
}

func (n *Normalizer) normalizeNode(node any, chain []roleExtractor) NormalizedMessage {
	return NormalizedMessage{
		Role:      extractRole(node, chain),
		Text:      ExtractText(node),
		Timestamp: ExtractTimestamp(node),
	}
}

func isObject(v any) bool {
	_, ok := v.(*Object)
	return ok
}

func sortKey(ts *int64) int64 {
	if ts == nil {
		return 0
	}
	return *ts
}
