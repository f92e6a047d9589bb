package postbot

import (
	"context"
	"fmt"
	"sort"

	"github.com/zioncoderone/post-bot/model"
)

// headerRow is written once when a month sheet is created. The sheet is
// meant to be opened and edited by a human between generation and
// publication, so the header matches the sheet's content language.
var headerRow = []string{"Номер поста", "Тема", "Статус"}

// TopicSettings carries the generation parameters for topic lists.
type TopicSettings struct {
	Model  string // Completion model used for topic generation
	MaxLen int    // Client-side cap on the topic list response
}

// TopicStore owns the durable per-month queue of topics and their
// publication status. It is the only component that touches the tabular
// backing store; the Pipeline and Scheduler see topics, not sheets.
//
// Topic generation is decoupled from publication on purpose: a whole
// month's topics are seeded at once while publication proceeds day by day,
// leaving room for a human to pre-edit topics in between.
type TopicStore struct {
	sheets    SheetGateway
	generator *ContentGenerator
	settings  TopicSettings
	logger    Logger
}

// NewTopicStore creates a TopicStore. A nil logger falls back to NoopLogger.
func NewTopicStore(sheets SheetGateway, generator *ContentGenerator, settings TopicSettings, logger Logger) *TopicStore {
	if logger == nil {
		logger = &NoopLogger{}
	}
	return &TopicStore{
		sheets:    sheets,
		generator: generator,
		settings:  settings,
		logger:    logger,
	}
}

// EnsureMonthQueue guarantees the month's sheet exists with a populated
// topic row for every calendar day. Missing topics are generated and
// appended as pending rows with contiguous sequence numbers; rows that are
// already populated are never regenerated or overwritten. Returns the
// sheet name and how many topics were newly added (0 when the queue was
// already complete).
//
// A generation failure propagates: a queue cannot be considered ready
// without its topics, so the caller's ensure-operation aborts.
func (s *TopicStore) EnsureMonthQueue(ctx context.Context, mk model.MonthKey) (string, int, error) {
	sheet := mk.SheetName()
	days := mk.Days()

	rows, err := s.sheets.ReadAllRows(ctx, sheet)
	switch {
	case IsNoData(err):
		s.logger.Warnf("Sheet %s not found, creating", sheet)
		if err := s.sheets.Resize(ctx, sheet, days+1); err != nil {
			return "", 0, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to create sheet %s", sheet), err)
		}
		if err := s.sheets.WriteRange(ctx, sheet, 1, 1, [][]string{headerRow}); err != nil {
			return "", 0, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to write header of %s", sheet), err)
		}
		rows = nil
	case err != nil:
		return "", 0, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to read sheet %s", sheet), err)
	}

	existing := countPopulated(rows)
	missing := days - existing
	if missing <= 0 {
		s.logger.Debugf("Sheet %s already has all %d topics", sheet, days)
		return sheet, 0, nil
	}

	s.logger.Infof("Sheet %s is missing %d of %d topics, generating", sheet, missing, days)
	topics, err := s.generator.GenerateTopics(ctx, TopicListPrompt(s.settings.Model, missing), missing, s.settings.MaxLen)
	if err != nil {
		return "", 0, err
	}

	if err := s.sheets.Resize(ctx, sheet, days+1); err != nil {
		return "", 0, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to resize sheet %s", sheet), err)
	}

	appended := make([][]string, 0, len(topics))
	for i, topic := range topics {
		item := model.TopicItem{Sequence: existing + 1 + i, Topic: topic, Status: model.StatusPending}
		appended = append(appended, item.Cells())
	}
	// Data rows start below the header: sequence N lives on sheet row N+1.
	if err := s.sheets.WriteRange(ctx, sheet, existing+2, 1, appended); err != nil {
		return "", 0, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to append topics to %s", sheet), err)
	}

	s.logger.Infof("Added %d topics to sheet %s", len(appended), sheet)
	return sheet, len(appended), nil
}

// ListUnpublished returns the month's pending items with sequence numbers
// up to and including maxSeq, sorted ascending. Rows with a malformed
// sequence number are logged as warnings and skipped; they never abort the
// listing. Returns ErrNoData if the month's sheet does not exist; listing
// never creates a queue.
func (s *TopicStore) ListUnpublished(ctx context.Context, mk model.MonthKey, maxSeq int) ([]model.TopicItem, error) {
	sheet := mk.SheetName()

	rows, err := s.sheets.ReadAllRows(ctx, sheet)
	if IsNoData(err) {
		s.logger.Warnf("Sheet %s not found", sheet)
		return nil, err
	}
	if err != nil {
		return nil, NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to read sheet %s", sheet), err)
	}

	var items []model.TopicItem
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		item, err := model.ParseRow(i+1, cells)
		if err != nil {
			if err != model.ErrEmptyTopic {
				s.logger.Warnf("Sheet %s: skipping row: %v", sheet, err)
			}
			continue
		}
		if item.IsPublished() || item.Sequence > maxSeq {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Sequence < items[j].Sequence })
	return items, nil
}

// MarkPublished transitions the item's row to published, writing the
// success marker and its visual style. Idempotent: marking an already
// published row rewrites the same marker. The status transition is the
// only mutation a row ever receives after creation.
func (s *TopicStore) MarkPublished(ctx context.Context, mk model.MonthKey, item model.TopicItem) error {
	sheet := mk.SheetName()

	err := s.sheets.WriteRange(ctx, sheet, item.Row, model.ColStatus, [][]string{{model.PublishedMarker}})
	if err != nil {
		return NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to mark row %d of %s published", item.Row, sheet), err)
	}
	if err := s.sheets.ApplyCellStyle(ctx, sheet, item.Row, model.ColStatus, PublishedCellStyle); err != nil {
		// The marker is already durable; the style is cosmetic.
		s.logger.Warnf("Sheet %s: failed to style status cell of row %d: %v", sheet, item.Row, err)
	}
	return nil
}

// countPopulated counts data rows that carry a topic.
func countPopulated(rows [][]string) int {
	count := 0
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		if _, err := model.ParseRow(i+1, cells); err != model.ErrEmptyTopic {
			count++
		}
	}
	return count
}
