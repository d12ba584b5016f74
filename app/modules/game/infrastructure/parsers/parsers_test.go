package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVParser(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []ScheduleRow
		wantErr string
	}{
		{
			name: "date and time columns",
			data: "Date,Time,Home Team,Away Team,Field\n" +
				"2026-06-20,18:30,BOB,CUB,Memorial Park\n" +
				",,,,\n" +
				"2026-06-27,10:00,CUB,BOB,\n",
			want: []ScheduleRow{
				{Line: 2, When: "2026-06-20 18:30", Home: "BOB", Away: "CUB", Location: "Memorial Park"},
				{Line: 4, When: "2026-06-27 10:00", Home: "CUB", Away: "BOB"},
			},
		},
		{
			name: "single datetime column and byte order mark",
			data: "\xef\xbb\xbfwhen,visitor,home\nnext saturday at 6pm,Bobcats,Cubs\n",
			want: []ScheduleRow{
				{Line: 2, When: "next saturday at 6pm", Home: "Cubs", Away: "Bobcats"},
			},
		},
		{
			name:    "missing away column",
			data:    "date,home\n2026-06-20,BOB\n",
			wantErr: "home and away",
		},
		{
			name:    "header only",
			data:    "date,home,away\n",
			wantErr: ErrNoRows.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCSVParser().Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXLSXParser(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Date", "Time", "Home", "Away", "Location"},
		{"2026-06-20", "18:30", "BOB", "CUB", "Memorial Park"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []ScheduleRow{
		{Line: 2, When: "2026-06-20 18:30", Home: "BOB", Away: "CUB", Location: "Memorial Park"},
	}, got)

	_, err = NewXLSXParser().Parse([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	p, err := f.GetParser("Schedule.CSV")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	p, err = f.GetParser("schedule.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)

	_, err = f.GetParser("schedule.pdf")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoRows))
}
