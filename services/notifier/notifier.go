package notifier

import "context"

// MaxMessageLength is the per-message character limit applied before
// dispatch; longer texts are split into ordered sequential chunks.
const MaxMessageLength = 4000

// Notifier represents a service for delivering notification messages to a
// subscriber chat.
type Notifier interface {
	// Notify delivers a message, chunking it when it exceeds the limit
	Notify(ctx context.Context, chatID int64, text string) error
}

// SplitMessage splits text into chunks of at most limit characters. Splits
// happen at arbitrary character offsets, not word boundaries, so chunk
// boundaries are stable and reassembly is lossless.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
