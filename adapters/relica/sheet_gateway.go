package relica

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coregx/relica"

	postbot "github.com/zioncoderone/post-bot"
	"github.com/zioncoderone/post-bot/model"
)

// sheetRow is the storage record behind one sheet row.
type sheetRow struct {
	ID          int64     `json:"id"`
	Sheet       string    `json:"sheet" db:"sheet"`
	RowIndex    int       `json:"rowIndex" db:"row_index"`
	Seq         string    `json:"seq" db:"seq"`
	Topic       string    `json:"topic" db:"topic"`
	Status      string    `json:"status" db:"status"`
	StatusStyle string    `json:"statusStyle" db:"status_style"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SheetGateway implements postbot.SheetGateway using Relica.
type SheetGateway struct {
	db          *relica.DB
	tablePrefix string
}

// NewSheetGateway creates a new SheetGateway with default table prefix.
func NewSheetGateway(sqlDB *sql.DB, driverName string) *SheetGateway {
	return &SheetGateway{
		db:          relica.WrapDB(sqlDB, driverName),
		tablePrefix: "postbot_",
	}
}

// NewSheetGatewayWithPrefix creates a new SheetGateway with custom table prefix.
func NewSheetGatewayWithPrefix(sqlDB *sql.DB, driverName, prefix string) *SheetGateway {
	return &SheetGateway{
		db:          relica.WrapDB(sqlDB, driverName),
		tablePrefix: prefix,
	}
}

func (g *SheetGateway) tableName() string {
	return g.tablePrefix + "sheet_row"
}

// ReadAllRows retrieves every row of the named sheet in row order.
// Returns postbot.ErrNoData if the sheet has no rows, i.e. does not exist.
func (g *SheetGateway) ReadAllRows(ctx context.Context, sheet string) ([][]string, error) {
	records, err := g.loadSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, postbot.ErrNoData
	}

	maxRow := 0
	for _, rec := range records {
		if rec.RowIndex > maxRow {
			maxRow = rec.RowIndex
		}
	}

	rows := make([][]string, maxRow)
	for i := range rows {
		rows[i] = []string{"", "", ""}
	}
	for _, rec := range records {
		rows[rec.RowIndex-1] = []string{rec.Seq, rec.Topic, rec.Status}
	}
	return rows, nil
}

// WriteRange writes a block of cells starting at (startRow, startCol),
// creating row slots as needed. Columns outside the block keep their
// current values.
func (g *SheetGateway) WriteRange(ctx context.Context, sheet string, startRow, startCol int, rows [][]string) error {
	if startRow < 1 || startCol < 1 {
		return postbot.NewError(postbot.ErrCodeValidation, "range must start at row 1, column 1 or later")
	}

	for i, cells := range rows {
		rowIndex := startRow + i
		values := make(map[string]interface{}, len(cells))
		for j, value := range cells {
			column, err := cellColumn(startCol + j)
			if err != nil {
				return err
			}
			values[column] = value
		}
		if err := g.upsertRow(ctx, sheet, rowIndex, values); err != nil {
			return err
		}
	}
	return nil
}

// Resize guarantees the sheet exists with at least rowCount row slots.
// Rows are never removed: the month queue is a historical record.
func (g *SheetGateway) Resize(ctx context.Context, sheet string, rowCount int) error {
	records, err := g.loadSheet(ctx, sheet)
	if err != nil {
		return err
	}

	present := make(map[int]bool, len(records))
	for _, rec := range records {
		present[rec.RowIndex] = true
	}

	for idx := 1; idx <= rowCount; idx++ {
		if present[idx] {
			continue
		}
		rec := &sheetRow{
			Sheet:     sheet,
			RowIndex:  idx,
			CreatedAt: time.Now(),
		}
		if err := g.db.WithContext(ctx).Model(rec).Table(g.tableName()).Insert(); err != nil {
			return postbot.NewErrorWithCause(postbot.ErrCodeStore,
				fmt.Sprintf("failed to grow sheet %s to %d rows", sheet, rowCount), err)
		}
	}
	return nil
}

// ApplyCellStyle records the style of a status cell. Only the status
// column carries styling; styles are cosmetic and never read back by the
// library itself.
func (g *SheetGateway) ApplyCellStyle(ctx context.Context, sheet string, row, col int, style postbot.CellStyle) error {
	if col != model.ColStatus {
		return postbot.NewError(postbot.ErrCodeValidation,
			fmt.Sprintf("only the status column supports styling, got column %d", col))
	}

	_, err := g.db.WithContext(ctx).Update(g.tableName()).
		Set(map[string]interface{}{
			"status_style": encodeStyle(style),
		}).
		Where("sheet = ? AND row_index = ?", sheet, row).
		WithContext(ctx).
		Execute()

	if err != nil {
		return postbot.NewErrorWithCause(postbot.ErrCodeStore,
			fmt.Sprintf("failed to style cell %s!R%dC%d", sheet, row, col), err)
	}
	return nil
}

// loadSheet retrieves all storage records of a sheet ordered by row.
func (g *SheetGateway) loadSheet(ctx context.Context, sheet string) ([]sheetRow, error) {
	var records []sheetRow

	err := g.db.WithContext(ctx).Select("*").
		From(g.tableName()).
		Where("sheet = ?", sheet).
		OrderBy("row_index ASC").
		WithContext(ctx).
		All(&records)

	if err != nil {
		return nil, postbot.NewErrorWithCause(postbot.ErrCodeStore,
			fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	return records, nil
}

// upsertRow updates the given columns of one row, inserting the row slot
// if it does not exist yet.
func (g *SheetGateway) upsertRow(ctx context.Context, sheet string, rowIndex int, values map[string]interface{}) error {
	var existing sheetRow

	err := g.db.WithContext(ctx).Select("*").
		From(g.tableName()).
		Where("sheet = ? AND row_index = ?", sheet, rowIndex).
		WithContext(ctx).
		One(&existing)

	if errors.Is(err, sql.ErrNoRows) {
		rec := &sheetRow{
			Sheet:     sheet,
			RowIndex:  rowIndex,
			CreatedAt: time.Now(),
		}
		applyValues(rec, values)
		if err := g.db.WithContext(ctx).Model(rec).Table(g.tableName()).Insert(); err != nil {
			return postbot.NewErrorWithCause(postbot.ErrCodeStore,
				fmt.Sprintf("failed to insert row %d of sheet %s", rowIndex, sheet), err)
		}
		return nil
	}
	if err != nil {
		return postbot.NewErrorWithCause(postbot.ErrCodeStore,
			fmt.Sprintf("failed to load row %d of sheet %s", rowIndex, sheet), err)
	}

	_, err = g.db.WithContext(ctx).Update(g.tableName()).
		Set(values).
		Where("sheet = ? AND row_index = ?", sheet, rowIndex).
		WithContext(ctx).
		Execute()

	if err != nil {
		return postbot.NewErrorWithCause(postbot.ErrCodeStore,
			fmt.Sprintf("failed to update row %d of sheet %s", rowIndex, sheet), err)
	}
	return nil
}

// cellColumn maps a 1-based sheet column to its storage column.
func cellColumn(col int) (string, error) {
	switch col {
	case model.ColSequence:
		return "seq", nil
	case model.ColTopic:
		return "topic", nil
	case model.ColStatus:
		return "status", nil
	default:
		return "", postbot.NewError(postbot.ErrCodeValidation,
			fmt.Sprintf("sheet has 3 columns, got column %d", col))
	}
}

func applyValues(rec *sheetRow, values map[string]interface{}) {
	for column, value := range values {
		text, _ := value.(string)
		switch column {
		case "seq":
			rec.Seq = text
		case "topic":
			rec.Topic = text
		case "status":
			rec.Status = text
		}
	}
}

// encodeStyle serializes a cell style for storage. Kept human-readable so
// a sheet export can translate it back into real formatting.
func encodeStyle(style postbot.CellStyle) string {
	return fmt.Sprintf("bold=%t;color=%s", style.Bold, style.Color)
}
