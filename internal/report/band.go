// Package report renders analysis reports for the console and as xlsx workbooks.
package report

// Band is a coarse reading of a match percentage.
type Band string

const (
	BandWeak   Band = "weak"
	BandFair   Band = "fair"
	BandStrong Band = "strong"
)

const (
	fairFrom   = 50.0
	strongFrom = 75.0
)

// BandOf places percent in the weak [0,50), fair [50,75) or strong [75,100] band.
func BandOf(percent float64) Band {
	switch {
	case percent >= strongFrom:
		return BandStrong
	case percent >= fairFrom:
		return BandFair
	default:
		return BandWeak
	}
}

const (
	noOverlapsMessage    = "No major overlaps"
	fullyCoveredMessage  = "You're fully covered!"
	noSuggestionsMessage = "No suggestions needed. You're well aligned!"
)
