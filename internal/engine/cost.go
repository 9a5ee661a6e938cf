package engine

import "sort"

// DiceCostValue describes a skill/card cost after modifiers (spec.md
// §4.4). Grounded on original_source's modifiable_values.DiceCostValue
// (see _INDEX.md / server/match.py imports); the teacher has no direct
// analogue since its cost model is ATK/DEF comparison, not a multiset
// the player pays from a shared pool.
type DiceCostValue struct {
	ElementalColor DieColor // meaningful only if ElementalCount > 0
	ElementalCount int
	SameCount      int // dice that must all share one (non-Omni) color
	AnyCount       int // any color, including left-over same-colored dice
	Charge         int // elemental burst charge requirement, not paid in dice
}

// Total returns the number of dice that must be paid (excluding charge,
// which is a character-resource cost, not a dice cost).
func (c DiceCostValue) Total() int {
	return c.ElementalCount + c.SameCount + c.AnyCount
}

// Satisfied reports whether the candidate multiset of dice covers the
// cost. Omni substitutes for any required color; "same" requires all
// selected non-Omni dice assigned to that bucket to share one color.
func (c DiceCostValue) Satisfied(candidate []DieColor) bool {
	return satisfyCost(c, candidate)
}

func satisfyCost(c DiceCostValue, candidate []DieColor) bool {
	if len(candidate) != c.Total() {
		return false
	}
	counts := map[DieColor]int{}
	for _, d := range candidate {
		counts[d]++
	}
	omni := counts[DieOmni]

	// 1. Elemental requirement: specific color, Omni may substitute.
	need := c.ElementalCount
	if need > 0 {
		have := counts[c.ElementalColor]
		use := min(have, need)
		counts[c.ElementalColor] -= use
		need -= use
		if need > 0 {
			use = min(omni, need)
			omni -= use
			need -= use
		}
		if need > 0 {
			return false
		}
	}

	// 2. Same-color requirement: pick the best remaining single color
	// (plus Omni) to satisfy SameCount.
	need = c.SameCount
	if need > 0 {
		bestColor := DieColor(-1)
		bestHave := -1
		for color, have := range counts {
			if color == DieOmni {
				continue
			}
			if have > bestHave {
				bestHave = have
				bestColor = color
			}
		}
		have := 0
		if bestHave > 0 {
			have = counts[bestColor]
		}
		use := min(have, need)
		if bestHave > 0 {
			counts[bestColor] -= use
		}
		need -= use
		if need > 0 {
			use = min(omni, need)
			omni -= use
			need -= use
		}
		if need > 0 {
			return false
		}
	}

	// 3. Any-color requirement: consume whatever remains, Omni last.
	need = c.AnyCount
	remaining := 0
	for color, have := range counts {
		if color == DieOmni {
			continue
		}
		remaining += have
	}
	use := min(remaining, need)
	need -= use
	if need > 0 {
		use = min(omni, need)
		omni -= use
		need -= use
	}
	return need == 0
}

// SortDicePool reorders a dice multiset per spec.md §3: active-character
// element first, then Omni, then by count-desc, then by color enum order.
func SortDicePool(dice []DieColor, activeElement Element) []DieColor {
	activeColor, hasActive := ElementToDieColor[activeElement]
	counts := map[DieColor]int{}
	for _, d := range dice {
		counts[d]++
	}
	out := append([]DieColor(nil), dice...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ra := diceRank(a, activeColor, hasActive)
		rb := diceRank(b, activeColor, hasActive)
		if ra != rb {
			return ra < rb
		}
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})
	return out
}

func diceRank(c DieColor, activeColor DieColor, hasActive bool) int {
	if hasActive && c == activeColor {
		return 0
	}
	if c == DieOmni {
		return 1
	}
	return 2
}

