package parsers

import (
	"fmt"
	"strings"
)

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// header holds the column index for each field, -1 when absent.
type header map[string]int

func parseHeader(row []string) (header, error) {
	h := header{}
	for field := range columns {
		h[field] = -1
	}
	for i, col := range row {
		name := normalizeHeader(col)
		for field, aliases := range columns {
			for _, alias := range aliases {
				if name == alias && h[field] < 0 {
					h[field] = i
				}
			}
		}
	}

	if h["home"] < 0 || h["away"] < 0 {
		return nil, fmt.Errorf("schedule header must include home and away columns")
	}
	if h["datetime"] < 0 && h["date"] < 0 {
		return nil, fmt.Errorf("schedule header must include a date or datetime column")
	}
	return h, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// toScheduleRows converts a header row and data rows. Lines are 1-based and
// count the header.
func toScheduleRows(rows [][]string) ([]ScheduleRow, error) {
	if len(rows) < 2 {
		return nil, ErrNoRows
	}
	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var out []ScheduleRow
	for i, row := range rows[1:] {
		home, away := cell(row, h["home"]), cell(row, h["away"])
		if home == "" && away == "" {
			continue
		}

		when := cell(row, h["datetime"])
		if when == "" {
			when = strings.TrimSpace(cell(row, h["date"]) + " " + cell(row, h["time"]))
		}

		out = append(out, ScheduleRow{
			Line:     i + 2,
			When:     when,
			Home:     home,
			Away:     away,
			Location: cell(row, h["location"]),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}
