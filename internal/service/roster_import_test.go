package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportRecord() []string {
	return []string{
		"9876543210",
		"PI 12345",
		"Downtown Store",
		"2025-03-01",
		"2025-03-31",
		"2025-03-14|2025-03-21",
		"9:00 AM",
		"1:00 PM",
		"12.9716",
		"77.5946",
		"Central Station",
	}
}

func TestParseImportRow(t *testing.T) {
	row, err := parseImportRow(validImportRecord())
	require.NoError(t, err)

	assert.Equal(t, int64(9876543210), row.DriverMobile)
	assert.Equal(t, "PI 12345", row.Registration)
	assert.Equal(t, "Downtown Store", row.StoreName)
	assert.Equal(t, []string{"2025-03-14", "2025-03-21"}, row.Holidays)
	assert.Equal(t, "09:00:00", row.SlotStart)
	assert.Equal(t, "13:00:00", row.SlotEnd)
	assert.Equal(t, 12.9716, row.Lat)
	assert.Equal(t, "Central Station", row.DestinationName)
}

func TestParseImportRowTrimsWhitespace(t *testing.T) {
	record := validImportRecord()
	record[1] = "  PI 12345  "
	record[2] = " Downtown Store "

	row, err := parseImportRow(record)
	require.NoError(t, err)
	assert.Equal(t, "PI 12345", row.Registration)
	assert.Equal(t, "Downtown Store", row.StoreName)
}

func TestParseImportRowNoHolidays(t *testing.T) {
	record := validImportRecord()
	record[5] = ""

	row, err := parseImportRow(record)
	require.NoError(t, err)
	assert.Empty(t, row.Holidays)
}

func TestParseImportRowRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]string)
	}{
		{"too few columns", func(r []string) { copy(r, r[:0]) }},
		{"non-numeric mobile", func(r []string) { r[0] = "not-a-number" }},
		{"empty registration", func(r []string) { r[1] = "" }},
		{"empty store", func(r []string) { r[2] = "" }},
		{"bad start date", func(r []string) { r[3] = "01-03-2025" }},
		{"end before start", func(r []string) { r[3], r[4] = "2025-03-31", "2025-03-01" }},
		{"bad holiday", func(r []string) { r[5] = "14 March" }},
		{"24h start time", func(r []string) { r[6] = "09:00:00" }},
		{"bad end time", func(r []string) { r[7] = "1 PM" }},
		{"bad lat", func(r []string) { r[8] = "north" }},
		{"empty station", func(r []string) { r[10] = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validImportRecord()
			if tt.name == "too few columns" {
				record = record[:5]
			} else {
				tt.mutate(record)
			}

			_, err := parseImportRow(record)
			assert.Error(t, err)
		})
	}
}

func TestMalformedImportCounters(t *testing.T) {
	result := malformedImport()
	assert.Equal(t, ImportResult{Added: -1, Skipped: -1, Invalid: -1, NoLicense: -1}, result)
}
