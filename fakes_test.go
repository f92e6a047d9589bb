package postbot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zioncoderone/post-bot/retry"
)

// memSheetGateway is an in-memory SheetGateway for tests, mirroring the
// semantics of the relica adapter.
type memSheetGateway struct {
	mu         sync.Mutex
	sheets     map[string][][]string        // sheet -> rows of 3 cells
	styles     map[string]map[int]CellStyle // sheet -> status row -> style
	failWrites bool
}

func newMemSheetGateway() *memSheetGateway {
	return &memSheetGateway{
		sheets: make(map[string][][]string),
		styles: make(map[string]map[int]CellStyle),
	}
}

func (m *memSheetGateway) ReadAllRows(_ context.Context, sheet string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok || len(rows) == 0 {
		return nil, ErrNoData
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *memSheetGateway) WriteRange(_ context.Context, sheet string, startRow, startCol int, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return NewError(ErrCodeStore, "write disabled")
	}
	for i, cells := range rows {
		m.growLocked(sheet, startRow+i)
		target := m.sheets[sheet][startRow+i-1]
		for j, value := range cells {
			col := startCol + j
			if col > 3 {
				return NewError(ErrCodeValidation, "column out of range")
			}
			target[col-1] = value
		}
	}
	return nil
}

func (m *memSheetGateway) Resize(_ context.Context, sheet string, rowCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return NewError(ErrCodeStore, "write disabled")
	}
	m.growLocked(sheet, rowCount)
	return nil
}

func (m *memSheetGateway) ApplyCellStyle(_ context.Context, sheet string, row, _ int, style CellStyle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.styles[sheet] == nil {
		m.styles[sheet] = make(map[int]CellStyle)
	}
	m.styles[sheet][row] = style
	return nil
}

func (m *memSheetGateway) growLocked(sheet string, rowCount int) {
	rows := m.sheets[sheet]
	for len(rows) < rowCount {
		rows = append(rows, []string{"", "", ""})
	}
	m.sheets[sheet] = rows
}

// row returns a copy of one 1-based row for assertions.
func (m *memSheetGateway) row(sheet string, rowIndex int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sheets[sheet][rowIndex-1]...)
}

// fakeCompletion scripts CompletionGateway responses in call order.
// A nil error entry returns the paired text.
type fakeCompletion struct {
	mu    sync.Mutex
	texts []string
	errs  []error
	calls int
	specs []PromptSpec
}

func (f *fakeCompletion) Complete(_ context.Context, spec PromptSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.specs = append(f.specs, spec)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.texts) {
		return f.texts[i], nil
	}
	return fmt.Sprintf("generated text %d", i+1), nil
}

// fakeChannel records ChannelGateway sends and can fail scripted calls.
type fakeChannel struct {
	mu     sync.Mutex
	texts  []string
	photos []string
	errs   []error
	calls  int
}

func (f *fakeChannel) SendText(_ context.Context, text string, _ Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return f.errs[i]
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeChannel) SendPhoto(_ context.Context, imageRef, caption string, _ Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return f.errs[i]
	}
	f.photos = append(f.photos, imageRef+"|"+caption)
	return nil
}

// instantPolicy is the default retry policy with sleeps recorded instead
// of performed, so retry-heavy tests finish instantly.
func instantPolicy(slept *[]time.Duration) retry.Policy {
	p := retry.DefaultPolicy()
	p.Sleep = func(_ context.Context, d time.Duration) error {
		if slept != nil {
			*slept = append(*slept, d)
		}
		return nil
	}
	return p
}

// topicLines joins n numbered topics the way the completion service
// answers a topic-list prompt.
func topicLines(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		out += fmt.Sprintf("%d. Тема %d\n", i, i)
	}
	return out
}
