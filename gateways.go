package postbot

import (
	"context"
)

// SheetGateway defines the tabular-store contract the TopicStore builds on.
// A sheet is a named grid of text cells, one sheet per calendar month. The
// reference implementation persists sheets in a SQL database (see
// adapters/relica); anything satisfying the same read-all / write-range /
// resize / apply-cell-style contract can back the store without touching
// the Pipeline or Scheduler.
//
// Rows and columns are 1-based, matching spreadsheet conventions.
type SheetGateway interface {
	// ReadAllRows returns every row of the named sheet in row order.
	// Trailing empty cells may be trimmed. Returns ErrNoData if the sheet
	// does not exist; absence is a distinct, recoverable condition.
	ReadAllRows(ctx context.Context, sheet string) ([][]string, error)

	// WriteRange writes a block of cells starting at (startRow, startCol).
	// Creates row slots as needed. Cells outside the block are untouched.
	WriteRange(ctx context.Context, sheet string, startRow, startCol int, rows [][]string) error

	// Resize guarantees the sheet exists and has at least rowCount row
	// slots. Never removes rows.
	Resize(ctx context.Context, sheet string, rowCount int) error

	// ApplyCellStyle applies a visual style to one cell. Styling is
	// cosmetic: readers of the sheet rely on cell text, not style.
	ApplyCellStyle(ctx context.Context, sheet string, row, col int, style CellStyle) error
}

// CellStyle describes the visual formatting of a sheet cell.
type CellStyle struct {
	Bold  bool   // Bold text
	Color string // Text color, hex "#RRGGBB"
}

// PublishedCellStyle is the success marker style applied to the status
// cell of a published row: bold dark green, readable at a glance.
var PublishedCellStyle = CellStyle{Bold: true, Color: "#008000"}

// PromptSpec describes one completion request: the model to use and the
// role-tagged conversation that sets persona and task.
type PromptSpec struct {
	Model       string  // Model identifier
	System      string  // Persona / style instruction
	User        string  // The task itself
	MaxTokens   int     // Upper bound on generated tokens
	Temperature float32 // Sampling temperature
}

// CompletionGateway issues a single text-completion request.
// Implementations translate provider errors into postbot errors:
// RateLimited for rate-limit rejections, GENERATION_ERROR otherwise.
// Retry discipline lives in ContentGenerator, not here.
type CompletionGateway interface {
	// Complete returns the generated text for one request.
	Complete(ctx context.Context, spec PromptSpec) (string, error)
}

// Button is the actionable link element attached to every post.
type Button struct {
	Label string // Visible button text
	URL   string // Link target
}

// ChannelGateway delivers posts to the messaging channel.
// Implementations translate transport errors into postbot errors:
// FloodWait (carrying the signaled mandatory wait) for flood control,
// DELIVERY_ERROR otherwise. Retry discipline lives in ChannelPublisher.
type ChannelGateway interface {
	// SendText delivers a text post with the attached button.
	SendText(ctx context.Context, text string, button Button) error

	// SendPhoto delivers an image post with caption and the attached button.
	SendPhoto(ctx context.Context, imageRef, caption string, button Button) error
}
