// Package statsdomain holds box-score lines and the rate stats derived from them.
package statsdomain

import (
	"fmt"

	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
)

// maxCount caps every counting stat on a single line.
const maxCount = 200

// Decision is a pitcher's result for one game.
type Decision string

const (
	DecisionWin  Decision = "W"
	DecisionLoss Decision = "L"
	DecisionSave Decision = "S"
)

func (d Decision) IsValid() bool {
	return d == DecisionWin || d == DecisionLoss || d == DecisionSave
}

// BattingLine is one player's batting for one game.
type BattingLine struct {
	AtBats      int `json:"ab"`
	Runs        int `json:"r"`
	Hits        int `json:"h"`
	Doubles     int `json:"doubles"`
	Triples     int `json:"triples"`
	HomeRuns    int `json:"hr"`
	RBI         int `json:"rbi"`
	Walks       int `json:"bb"`
	Strikeouts  int `json:"so"`
	StolenBases int `json:"sb"`
	HitByPitch  int `json:"hbp"`
	SacFlies    int `json:"sf"`
}

// PlateAppearances counts AB, BB, HBP and SF.
func (b BattingLine) PlateAppearances() int {
	return b.AtBats + b.Walks + b.HitByPitch + b.SacFlies
}

// TotalBases counts singles once, doubles twice and so on.
func (b BattingLine) TotalBases() int {
	singles := b.Hits - b.Doubles - b.Triples - b.HomeRuns
	return singles + 2*b.Doubles + 3*b.Triples + 4*b.HomeRuns
}

// Add returns the sum of two lines.
func (b BattingLine) Add(o BattingLine) BattingLine {
	return BattingLine{
		AtBats:      b.AtBats + o.AtBats,
		Runs:        b.Runs + o.Runs,
		Hits:        b.Hits + o.Hits,
		Doubles:     b.Doubles + o.Doubles,
		Triples:     b.Triples + o.Triples,
		HomeRuns:    b.HomeRuns + o.HomeRuns,
		RBI:         b.RBI + o.RBI,
		Walks:       b.Walks + o.Walks,
		Strikeouts:  b.Strikeouts + o.Strikeouts,
		StolenBases: b.StolenBases + o.StolenBases,
		HitByPitch:  b.HitByPitch + o.HitByPitch,
		SacFlies:    b.SacFlies + o.SacFlies,
	}
}

// Validate checks ranges and that extra-base hits and hits fit inside at-bats.
func (b BattingLine) Validate() *apperr.Failure {
	counts := map[string]int{
		"ab": b.AtBats, "r": b.Runs, "h": b.Hits, "doubles": b.Doubles, "triples": b.Triples,
		"hr": b.HomeRuns, "rbi": b.RBI, "bb": b.Walks, "so": b.Strikeouts, "sb": b.StolenBases,
		"hbp": b.HitByPitch, "sf": b.SacFlies,
	}
	if f := checkCounts(counts); f != nil {
		return f
	}
	if b.Doubles+b.Triples+b.HomeRuns > b.Hits {
		return apperr.Validation("doubles, triples and home runs cannot exceed hits")
	}
	if b.Hits > b.AtBats {
		return apperr.Validation("hits cannot exceed at-bats")
	}
	if b.Strikeouts > b.AtBats {
		return apperr.Validation("strikeouts cannot exceed at-bats")
	}
	return nil
}

// PitchingLine is one pitcher's work for one game. Innings are stored as outs.
type PitchingLine struct {
	Outs       int       `json:"outs"`
	Hits       int       `json:"h"`
	Runs       int       `json:"r"`
	EarnedRuns int       `json:"er"`
	Walks      int       `json:"bb"`
	Strikeouts int       `json:"so"`
	HomeRuns   int       `json:"hr"`
	Pitches    int       `json:"pitches"`
	Decision   *Decision `json:"decision,omitempty"`
}

// Validate checks ranges and that earned runs and homers fit inside runs and hits.
func (p PitchingLine) Validate() *apperr.Failure {
	counts := map[string]int{
		"outs": p.Outs, "h": p.Hits, "r": p.Runs, "er": p.EarnedRuns, "bb": p.Walks,
		"so": p.Strikeouts, "hr": p.HomeRuns,
	}
	if f := checkCounts(counts); f != nil {
		return f
	}
	if p.Pitches < 0 || p.Pitches > 500 {
		return apperr.Validation("pitches must be between 0 and 500")
	}
	if p.EarnedRuns > p.Runs {
		return apperr.Validation("earned runs cannot exceed runs")
	}
	if p.HomeRuns > p.Hits {
		return apperr.Validation("home runs cannot exceed hits")
	}
	if p.Decision != nil && !p.Decision.IsValid() {
		return apperr.Validation("decision must be W, L or S")
	}
	return nil
}

func checkCounts(counts map[string]int) *apperr.Failure {
	for name, v := range counts {
		if v < 0 || v > maxCount {
			return apperr.Validation(fmt.Sprintf("%s must be between 0 and %d", name, maxCount)).WithDetail("field", name)
		}
	}
	return nil
}
