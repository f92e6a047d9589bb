package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name     string
		row      int
		cells    []string
		expected TopicItem
		wantErr  bool
	}{
		{
			name:     "pending row",
			row:      2,
			cells:    []string{"1", "Замена фильтров", ""},
			expected: TopicItem{Row: 2, Sequence: 1, Topic: "Замена фильтров", Status: StatusPending},
		},
		{
			name:     "published row",
			row:      5,
			cells:    []string{"4", "Гидравлика", "Опубликовано"},
			expected: TopicItem{Row: 5, Sequence: 4, Topic: "Гидравлика", Status: StatusPublished},
		},
		{
			name:     "marker is case-insensitive",
			row:      3,
			cells:    []string{"2", "Ходовая часть", "опубликовано"},
			expected: TopicItem{Row: 3, Sequence: 2, Topic: "Ходовая часть", Status: StatusPublished},
		},
		{
			name:     "short row treated as pending",
			row:      4,
			cells:    []string{"3", "Диагностика"},
			expected: TopicItem{Row: 4, Sequence: 3, Topic: "Диагностика", Status: StatusPending},
		},
		{
			name:    "empty topic",
			row:     6,
			cells:   []string{"5", "   ", ""},
			wantErr: true,
		},
		{
			name:    "malformed sequence number",
			row:     7,
			cells:   []string{"abc", "Топливная система", ""},
			wantErr: true,
		},
		{
			name:    "zero sequence number",
			row:     8,
			cells:   []string{"0", "Электрика", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseRow(tt.row, tt.cells)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, item)
		})
	}
}

func TestParseRow_EmptyTopicIsDistinct(t *testing.T) {
	_, err := ParseRow(2, []string{"", "", ""})
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = ParseRow(2, []string{"x", "topic", ""})
	assert.NotErrorIs(t, err, ErrEmptyTopic)
}

func TestTopicItem_Cells(t *testing.T) {
	pending := TopicItem{Row: 2, Sequence: 1, Topic: "Гусеницы", Status: StatusPending}
	assert.Equal(t, []string{"1", "Гусеницы", ""}, pending.Cells())

	published := TopicItem{Row: 2, Sequence: 1, Topic: "Гусеницы", Status: StatusPublished}
	assert.Equal(t, []string{"1", "Гусеницы", "Опубликовано"}, published.Cells())
}

func TestTopicItem_IsPublished(t *testing.T) {
	assert.False(t, TopicItem{Status: StatusPending}.IsPublished())
	assert.True(t, TopicItem{Status: StatusPublished}.IsPublished())
}
