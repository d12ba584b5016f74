package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVParser reads comma-separated schedules.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(fileData []byte) ([]ScheduleRow, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(fileData, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return toScheduleRows(rows)
}
