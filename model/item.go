package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemStatus represents the publication state of a topic item.
// The transition is monotonic: Pending → Published, never back.
type ItemStatus string

const (
	// StatusPending indicates the topic has not been published yet.
	StatusPending ItemStatus = "pending"

	// StatusPublished indicates the topic's post was delivered to the channel.
	StatusPublished ItemStatus = "published"
)

// PublishedMarker is the literal written into the status cell of a
// published row. The sheet is human-audited, so the marker matches the
// language of the sheet content.
const PublishedMarker = "Опубликовано"

// Column offsets within a sheet row (0-based cell index, 1-based sheet column).
const (
	ColSequence = 1 // sequence number
	ColTopic    = 2 // topic text
	ColStatus   = 3 // status marker, empty = pending
)

// TopicItem is one schedulable unit of content: a row in a Month Queue
// with a sequence position and publish status. Sequence 1 publishes on the
// first day of the month, N on the last.
type TopicItem struct {
	Row      int        // 1-based row in the backing sheet (row 1 is the header)
	Sequence int        // publication order, unique within the month
	Topic    string     // user-facing subject of the generated post
	Status   ItemStatus // pending or published
}

// IsPublished reports whether the item has already been published.
func (t TopicItem) IsPublished() bool {
	return t.Status == StatusPublished
}

// Cells returns the sheet-row representation of the item.
func (t TopicItem) Cells() []string {
	status := ""
	if t.Status == StatusPublished {
		status = PublishedMarker
	}
	return []string{strconv.Itoa(t.Sequence), t.Topic, status}
}

// ParseRow interprets one data row of a month sheet. rowIndex is the
// 1-based sheet row the cells came from. Rows with an empty topic are
// reported as ErrEmptyTopic (unpopulated slots are expected while a queue
// is being filled); a malformed sequence number is an error the caller
// should log and skip, never a fatal condition.
func ParseRow(rowIndex int, cells []string) (TopicItem, error) {
	item := TopicItem{Row: rowIndex, Status: StatusPending}

	item.Topic = strings.TrimSpace(cell(cells, ColTopic))
	if item.Topic == "" {
		return item, ErrEmptyTopic
	}

	seqText := strings.TrimSpace(cell(cells, ColSequence))
	seq, err := strconv.Atoi(seqText)
	if err != nil || seq <= 0 {
		return item, fmt.Errorf("row %d: bad sequence number %q", rowIndex, seqText)
	}
	item.Sequence = seq

	if strings.EqualFold(strings.TrimSpace(cell(cells, ColStatus)), PublishedMarker) {
		item.Status = StatusPublished
	}
	return item, nil
}

// ErrEmptyTopic marks an unpopulated row slot. Not a data error: queues
// are allowed to be partially populated while topics are being generated.
var ErrEmptyTopic = DomainError{Code: "EMPTY_TOPIC", Message: "row has no topic"}

// DomainError represents a domain-level rule violation.
type DomainError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
}

func (e DomainError) Error() string {
	return e.Message
}

// cell returns the 1-based column col from cells, or "" when the row is
// shorter than that (tabular stores trim trailing empty cells).
func cell(cells []string, col int) string {
	if col-1 >= len(cells) {
		return ""
	}
	return cells[col-1]
}
