package statsdomain

import (
	"fmt"
	"math"
)

// BattingTotals is a season of batting lines with rate stats.
type BattingTotals struct {
	BattingLine
	Games int     `json:"g"`
	PA    int     `json:"pa"`
	AVG   float64 `json:"avg"`
	OBP   float64 `json:"obp"`
	SLG   float64 `json:"slg"`
	OPS   float64 `json:"ops"`
}

// NewBattingTotals computes rate stats for a summed line. Rates are rounded
// to three places and are zero when the denominator is zero.
func NewBattingTotals(sum BattingLine, games int) BattingTotals {
	t := BattingTotals{BattingLine: sum, Games: games, PA: sum.PlateAppearances()}
	t.AVG = ratio(sum.Hits, sum.AtBats)
	t.OBP = ratio(sum.Hits+sum.Walks+sum.HitByPitch, sum.AtBats+sum.Walks+sum.HitByPitch+sum.SacFlies)
	t.SLG = ratio(sum.TotalBases(), sum.AtBats)
	t.OPS = round3(t.OBP + t.SLG)
	return t
}

// PitchingTotals is a season of pitching lines with rate stats.
type PitchingTotals struct {
	Outs       int     `json:"outs"`
	Hits       int     `json:"h"`
	Runs       int     `json:"r"`
	EarnedRuns int     `json:"er"`
	Walks      int     `json:"bb"`
	Strikeouts int     `json:"so"`
	HomeRuns   int     `json:"hr"`
	Pitches    int     `json:"pitches"`
	Wins       int     `json:"w"`
	Losses     int     `json:"l"`
	Saves      int     `json:"sv"`
	Games      int     `json:"g"`
	IP         string  `json:"ip"`
	ERA        float64 `json:"era"`
	WHIP       float64 `json:"whip"`
}

// Add accumulates one game's line.
func (t *PitchingTotals) Add(p PitchingLine) {
	t.Outs += p.Outs
	t.Hits += p.Hits
	t.Runs += p.Runs
	t.EarnedRuns += p.EarnedRuns
	t.Walks += p.Walks
	t.Strikeouts += p.Strikeouts
	t.HomeRuns += p.HomeRuns
	t.Pitches += p.Pitches
	t.Games++
	if p.Decision != nil {
		switch *p.Decision {
		case DecisionWin:
			t.Wins++
		case DecisionLoss:
			t.Losses++
		case DecisionSave:
			t.Saves++
		}
	}
}

// Finish fills IP, ERA and WHIP. ERA is scaled to a regulation game.
func (t *PitchingTotals) Finish(regulationInnings int) {
	t.IP = InningsPitched(t.Outs)
	if t.Outs == 0 {
		t.ERA, t.WHIP = 0, 0
		return
	}
	innings := float64(t.Outs) / 3
	t.ERA = math.Round(float64(t.EarnedRuns)*float64(regulationInnings)/innings*100) / 100
	t.WHIP = math.Round(float64(t.Walks+t.Hits)/innings*100) / 100
}

// InningsPitched renders outs the scorebook way: 14 outs is "4.2".
func InningsPitched(outs int) string {
	return fmt.Sprintf("%d.%d", outs/3, outs%3)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round3(float64(num) / float64(den))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
