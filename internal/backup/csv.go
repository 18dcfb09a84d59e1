package backup

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

// csvRow is one spreadsheet row. Optional columns stay strings so an empty
// cell is distinguishable from zero.
type csvRow struct {
	Date       string  `csv:"date"`
	Asset      string  `csv:"asset"`
	Direction  string  `csv:"direction"`
	EntryPrice float64 `csv:"entryPrice"`
	ExitPrice  string  `csv:"exitPrice"`
	Size       float64 `csv:"size"`
	Leverage   string  `csv:"leverage"`
}

// ParseCSV reads spreadsheet-exported rows into trades ready for the
// ledger's import path. The whole file is rejected on the first malformed
// row; pnl derivation is left to the ledger.
func ParseCSV(r io.Reader) ([]models.Trade, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "parsing csv")
	}

	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		t, err := row.toTrade()
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func (row csvRow) toTrade() (models.Trade, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return models.Trade{}, err
	}

	direction, err := models.ParseDirection(row.Direction)
	if err != nil {
		return models.Trade{}, err
	}

	t := models.Trade{
		Date:       date,
		Asset:      strings.TrimSpace(row.Asset),
		Direction:  direction,
		EntryPrice: row.EntryPrice,
		Size:       row.Size,
		Leverage:   strings.TrimSpace(row.Leverage),
	}

	if exitText := strings.TrimSpace(row.ExitPrice); exitText != "" {
		exit, err := strconv.ParseFloat(exitText, 64)
		if err != nil {
			return models.Trade{}, errors.NewValidationError("exitPrice", exitText, "not a number")
		}
		t.ExitPrice = &exit
	}

	return t, nil
}

func parseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if d, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.NewValidationError("date", text, "unrecognized date format")
}

