package engine

import "fmt"

// Area identifies which zone of a player's table an object lives in.
type Area int

const (
	AreaInvalid Area = iota
	AreaDeck
	AreaHand
	AreaSummon
	AreaSupport
	AreaDice
	AreaCharacter
	AreaTeamStatus
	AreaCharacterStatus
	AreaWeapon
	AreaArtifact
	AreaTalent
	AreaSystem
)

func (a Area) String() string {
	switch a {
	case AreaDeck:
		return "Deck"
	case AreaHand:
		return "Hand"
	case AreaSummon:
		return "Summon"
	case AreaSupport:
		return "Support"
	case AreaDice:
		return "Dice"
	case AreaCharacter:
		return "Character"
	case AreaTeamStatus:
		return "TeamStatus"
	case AreaCharacterStatus:
		return "CharacterStatus"
	case AreaWeapon:
		return "Weapon"
	case AreaArtifact:
		return "Artifact"
	case AreaTalent:
		return "Talent"
	case AreaSystem:
		return "System"
	default:
		return "Invalid"
	}
}

// Position is the stable (player, area, index) triple every live object
// carries. Cross-object references are resolved through it rather than
// held as direct pointers, so effects never store a stale reference.
type Position struct {
	Player         int
	CharacterIndex int // meaningful only when Area is character-scoped
	Area           Area
	Index          int // index within Area (hand slot, summon slot, ...)
}

func (p Position) String() string {
	return fmt.Sprintf("P%d/%s[%d]", p.Player, p.Area, p.Index)
}

func (p Position) Invalid() bool {
	return p.Area == AreaInvalid
}
