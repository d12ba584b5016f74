package parsers

import "errors"

// ErrNoRows is returned when a file has a header but no schedule rows.
var ErrNoRows = errors.New("schedule contains no games")

// Parser reads an uploaded schedule.
type Parser interface {
	// Parse returns one ScheduleRow per non-empty data row. fileData holds the
	// raw file bytes.
	Parse(fileData []byte) ([]ScheduleRow, error)
}

// ScheduleRow is one game as written in the file. Team columns hold a name or
// abbreviation; When holds the date and time as entered.
type ScheduleRow struct {
	Line     int    `json:"line"`
	When     string `json:"when"`
	Home     string `json:"home"`
	Away     string `json:"away"`
	Location string `json:"location,omitempty"`
}

// columns maps header aliases to fields.
var columns = map[string][]string{
	"date":     {"date", "day", "gamedate"},
	"time":     {"time", "starttime", "gametime"},
	"datetime": {"datetime", "when", "scheduledat", "start"},
	"home":     {"home", "hometeam"},
	"away":     {"away", "awayteam", "visitor", "visitors"},
	"location": {"location", "field", "venue", "park"},
}
