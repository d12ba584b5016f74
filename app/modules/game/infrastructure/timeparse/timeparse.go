// Package gametime turns user-entered game times into UTC instants.
package gametime

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognized is returned when no layout or phrase matches the input.
var ErrUnrecognized = errors.New("could not recognize date/time")

// ErrInPast is returned when a natural-language time resolves before now.
var ErrInPast = errors.New("game time must be in the future")

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// layouts are tried in order before the natural-language parser.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
}

var abbreviations = map[string]string{
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"EST": "America/New_York",
	"EDT": "America/New_York",
}

// Parser resolves times in the league's home timezone.
type Parser struct {
	loc   *time.Location
	clock clockwork.Clock
	w     *when.Parser
}

// NewParser builds a parser for timezone, which may be an IANA name or a US
// abbreviation such as CDT.
func NewParser(timezone string, clock clockwork.Clock) (*Parser, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{loc: loc, clock: clock, w: w}, nil
}

// LoadLocation accepts an IANA name or a US abbreviation.
func LoadLocation(timezone string) (*time.Location, error) {
	if full, ok := abbreviations[strings.ToUpper(strings.TrimSpace(timezone))]; ok {
		timezone = full
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location { return p.loc }

// Parse reads an absolute timestamp or a phrase like "next saturday at 6pm".
// Absolute layouts without an offset are read in the league timezone. Phrases
// must resolve to the future.
func (p *Parser) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognized
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, p.loc); err == nil {
			return t.UTC(), nil
		}
	}

	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "today ", "today at ")
	normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

	now := p.clock.Now().In(p.loc)
	r, err := p.w.Parse(normalized, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnrecognized, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
	}

	parsed := r.Time.In(p.loc).Truncate(time.Minute)
	if parsed.Before(now.Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("%w (parsed %s)", ErrInPast, parsed.Format(time.RFC3339))
	}
	return parsed.UTC(), nil
}
