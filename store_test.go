package postbot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zioncoderone/post-bot/model"
)

func newTestStore(sheets SheetGateway, completion CompletionGateway) *TopicStore {
	gen := NewContentGenerator(completion, nil, WithGeneratorRetryPolicy(instantPolicy(nil)))
	return NewTopicStore(sheets, gen, TopicSettings{Model: "test-model", MaxLen: 1000}, nil)
}

func TestEnsureMonthQueue_CreatesFullMonth(t *testing.T) {
	sheets := newMemSheetGateway()
	completion := &fakeCompletion{texts: []string{topicLines(28)}}
	store := newTestStore(sheets, completion)
	mk := model.MonthKey{Year: 2025, Month: time.February}

	sheet, added, err := store.EnsureMonthQueue(context.Background(), mk)

	assert.NoError(t, err)
	assert.Equal(t, "2025-02", sheet)
	assert.Equal(t, 28, added)
	assert.Equal(t, []string{"Номер поста", "Тема", "Статус"}, sheets.row(sheet, 1))
	assert.Equal(t, []string{"1", "Тема 1", ""}, sheets.row(sheet, 2))
	assert.Equal(t, []string{"28", "Тема 28", ""}, sheets.row(sheet, 29))
	assert.Contains(t, completion.specs[0].User, "28", "prompt asks for exactly the missing count")
}

func TestEnsureMonthQueue_Idempotent(t *testing.T) {
	sheets := newMemSheetGateway()
	completion := &fakeCompletion{texts: []string{topicLines(28)}}
	store := newTestStore(sheets, completion)
	mk := model.MonthKey{Year: 2025, Month: time.February}

	_, added, err := store.EnsureMonthQueue(context.Background(), mk)
	assert.NoError(t, err)
	assert.Equal(t, 28, added)

	_, added, err = store.EnsureMonthQueue(context.Background(), mk)
	assert.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, completion.calls, "a complete queue must not trigger generation")
}

func TestEnsureMonthQueue_TopsUpPartialQueue(t *testing.T) {
	sheets := newMemSheetGateway()
	mk := model.MonthKey{Year: 2025, Month: time.April} // 30 days
	sheet := mk.SheetName()

	// Seed a queue with only the first 20 topics, two already published.
	ctx := context.Background()
	assert.NoError(t, sheets.Resize(ctx, sheet, 31))
	assert.NoError(t, sheets.WriteRange(ctx, sheet, 1, 1, [][]string{headerRow}))
	for i := 1; i <= 20; i++ {
		item := model.TopicItem{Sequence: i, Topic: topicName(i), Status: model.StatusPending}
		if i <= 2 {
			item.Status = model.StatusPublished
		}
		assert.NoError(t, sheets.WriteRange(ctx, sheet, i+1, 1, [][]string{item.Cells()}))
	}

	completion := &fakeCompletion{texts: []string{topicLines(10)}}
	store := newTestStore(sheets, completion)

	_, added, err := store.EnsureMonthQueue(ctx, mk)

	assert.NoError(t, err)
	assert.Equal(t, 10, added)
	// Existing rows are untouched, including published status.
	assert.Equal(t, []string{"1", topicName(1), model.PublishedMarker}, sheets.row(sheet, 2))
	assert.Equal(t, []string{"20", topicName(20), ""}, sheets.row(sheet, 21))
	// New rows continue the sequence below the existing ones.
	assert.Equal(t, []string{"21", "Тема 1", ""}, sheets.row(sheet, 22))
	assert.Equal(t, []string{"30", "Тема 10", ""}, sheets.row(sheet, 31))
}

func TestEnsureMonthQueue_GenerationFailureAborts(t *testing.T) {
	sheets := newMemSheetGateway()
	completion := &fakeCompletion{errs: []error{
		assert.AnError, assert.AnError, assert.AnError,
	}}
	store := newTestStore(sheets, completion)
	mk := model.MonthKey{Year: 2025, Month: time.February}

	_, _, err := store.EnsureMonthQueue(context.Background(), mk)

	assert.Error(t, err)
	assert.Equal(t, 3, completion.calls)
}

func TestEnsureMonthQueue_StoreFailure(t *testing.T) {
	sheets := newMemSheetGateway()
	sheets.failWrites = true
	store := newTestStore(sheets, &fakeCompletion{})
	mk := model.MonthKey{Year: 2025, Month: time.February}

	_, _, err := store.EnsureMonthQueue(context.Background(), mk)

	assert.Error(t, err)
	var pbErr *Error
	assert.ErrorAs(t, err, &pbErr)
	assert.Equal(t, ErrCodeStore, pbErr.Code)
}

func TestListUnpublished(t *testing.T) {
	sheets := newMemSheetGateway()
	mk := model.MonthKey{Year: 2025, Month: time.June}
	sheet := mk.SheetName()

	ctx := context.Background()
	assert.NoError(t, sheets.WriteRange(ctx, sheet, 1, 1, [][]string{
		headerRow,
		{"1", "Первая тема", model.PublishedMarker},
		{"2", "Вторая тема", ""},
		{"oops", "Сломанная строка", ""}, // bad sequence, skipped
		{"4", "Четвёртая тема", ""},
		{"", "", ""}, // unpopulated slot
		{"6", "Шестая тема", ""},
	}))

	store := newTestStore(sheets, &fakeCompletion{})
	items, err := store.ListUnpublished(ctx, mk, 4)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Sequence)
	assert.Equal(t, "Вторая тема", items[0].Topic)
	assert.Equal(t, 3, items[0].Row)
	assert.Equal(t, 4, items[1].Sequence)
}

func TestListUnpublished_SortsAscending(t *testing.T) {
	sheets := newMemSheetGateway()
	mk := model.MonthKey{Year: 2025, Month: time.June}

	ctx := context.Background()
	assert.NoError(t, sheets.WriteRange(ctx, mk.SheetName(), 1, 1, [][]string{
		headerRow,
		{"3", "Третья тема", ""},
		{"1", "Первая тема", ""},
		{"2", "Вторая тема", ""},
	}))

	store := newTestStore(sheets, &fakeCompletion{})
	items, err := store.ListUnpublished(ctx, mk, 31)

	assert.NoError(t, err)
	seqs := make([]int, 0, len(items))
	for _, item := range items {
		seqs = append(seqs, item.Sequence)
	}
	assert.Equal(t, []int{1, 2, 3}, seqs)
}

func TestListUnpublished_MissingSheet(t *testing.T) {
	store := newTestStore(newMemSheetGateway(), &fakeCompletion{})
	mk := model.MonthKey{Year: 2025, Month: time.June}

	items, err := store.ListUnpublished(context.Background(), mk, 31)

	assert.Nil(t, items)
	assert.True(t, IsNoData(err))
}

func TestMarkPublished(t *testing.T) {
	sheets := newMemSheetGateway()
	mk := model.MonthKey{Year: 2025, Month: time.June}
	sheet := mk.SheetName()

	ctx := context.Background()
	assert.NoError(t, sheets.WriteRange(ctx, sheet, 1, 1, [][]string{
		headerRow,
		{"1", "Первая тема", ""},
	}))

	store := newTestStore(sheets, &fakeCompletion{})
	item := model.TopicItem{Row: 2, Sequence: 1, Topic: "Первая тема", Status: model.StatusPending}
	assert.NoError(t, store.MarkPublished(ctx, mk, item))

	assert.Equal(t, []string{"1", "Первая тема", model.PublishedMarker}, sheets.row(sheet, 2))
	assert.Equal(t, PublishedCellStyle, sheets.styles[sheet][2])

	// A published item never comes back from listing.
	items, err := store.ListUnpublished(ctx, mk, 31)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func topicName(i int) string {
	return fmt.Sprintf("Существующая тема %d", i)
}
