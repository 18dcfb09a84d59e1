package backup

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

func TestExportParseRoundTrip(t *testing.T) {
	pnl := 30.0
	trades := []models.Trade{{
		ID:         1,
		Date:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Asset:      "ETH",
		Direction:  models.DirectionShort,
		EntryPrice: 3000,
		Size:       1,
		Status:     models.StatusClosed,
		PnL:        &pnl,
	}}
	strategies := []models.Strategy{{ID: "s1", Name: "Mean reversion"}}

	data, err := Export(trades, 5000, strategies, "s1")
	require.NoError(t, err)

	bundle, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, bundle.Trades, 1)
	assert.InDelta(t, 5000, bundle.InitialCapital, 1e-9)
	assert.Equal(t, "s1", bundle.ActiveStrategyID)
	assert.NotEmpty(t, bundle.Timestamp)
}

func TestExportEmptyStateHasArrays(t *testing.T) {
	data, err := Export(nil, 0, nil, "")
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "[]", strings.TrimSpace(string(fields["trades"])))
	assert.Equal(t, "[]", strings.TrimSpace(string(fields["strategies"])))
}

func TestParseRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"not an object":        `[1,2,3]`,
		"trades not array":     `{"trades":{},"initialCapital":1,"strategies":[],"timestamp":"t"}`,
		"capital not numeric":  `{"trades":[],"initialCapital":"1","strategies":[],"timestamp":"t"}`,
		"strategies not array": `{"trades":[],"initialCapital":1,"strategies":"x","timestamp":"t"}`,
		"timestamp not string": `{"trades":[],"initialCapital":1,"strategies":[],"timestamp":7}`,
		"missing trades":       `{"initialCapital":1,"strategies":[],"timestamp":"t"}`,
		"not json":             `{`,
	}

	for name, raw := range cases {
		_, err := Parse([]byte(raw))
		assert.ErrorIs(t, err, errors.ErrInvalidBackup, name)
	}
}

func TestParseCSV(t *testing.T) {
	csv := strings.Join([]string{
		"date,asset,direction,entryPrice,exitPrice,size,leverage",
		"2024-05-01,BTC,long,100,110,2,10x",
		"2024-05-02 14:30:00,ETH,SHORT,3000,,1,",
	}, "\n")

	trades, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, models.DirectionLong, trades[0].Direction)
	require.NotNil(t, trades[0].ExitPrice)
	assert.InDelta(t, 110, *trades[0].ExitPrice, 1e-9)
	assert.Equal(t, "10x", trades[0].Leverage)

	assert.Equal(t, models.DirectionShort, trades[1].Direction)
	assert.Nil(t, trades[1].ExitPrice)
	assert.Equal(t, 14, trades[1].Date.Hour())
}

func TestParseCSVRejectsMalformedRow(t *testing.T) {
	csv := strings.Join([]string{
		"date,asset,direction,entryPrice,exitPrice,size,leverage",
		"2024-05-01,BTC,sideways,100,110,2,",
	}, "\n")

	_, err := ParseCSV(strings.NewReader(csv))
	require.Error(t, err)

	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseCSVRejectsBadDate(t *testing.T) {
	csv := "date,asset,direction,entryPrice,exitPrice,size,leverage\nyesterday,BTC,long,1,,1,"
	_, err := ParseCSV(strings.NewReader(csv))
	assert.Error(t, err)
}
