package relevance

// Tier multipliers. A column's phrase prefix match (30) must dominate any
// single weaker tier, and the token tiers must keep the ratio 15:5:1.
const (
	PhrasePrefixMultiplier = 30
	WholeWordMultiplier    = 15
	PrefixMultiplier       = 5
	SubstringMultiplier    = 1
)

// Tier is a match strength.
type Tier int

const (
	TierSubstring Tier = iota + 1
	TierPrefix
	TierWholeWord
	TierPhrasePrefix
)

// Multiplier returns the tier's factor relative to a column weight.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierPhrasePrefix:
		return PhrasePrefixMultiplier
	case TierWholeWord:
		return WholeWordMultiplier
	case TierPrefix:
		return PrefixMultiplier
	case TierSubstring:
		return SubstringMultiplier
	default:
		return 0
	}
}

func (t Tier) String() string {
	switch t {
	case TierPhrasePrefix:
		return "phrase-prefix"
	case TierWholeWord:
		return "whole-word"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	default:
		return "none"
	}
}

// comparison is how a tier compares a column value with a term.
type comparison int

const (
	compareContains comparison = iota
	compareEquals
	comparePrefix
)

func (t Tier) comparison() comparison {
	switch t {
	case TierWholeWord:
		return compareEquals
	case TierPrefix, TierPhrasePrefix:
		return comparePrefix
	default:
		return compareContains
	}
}
