package gacha

// Grade is the rarity tier of a gem.
type Grade string

const (
	GradeCommon    Grade = "common"
	GradeRare      Grade = "rare"
	GradeEpic      Grade = "epic"
	GradeLegendary Grade = "legendary"
	GradeUnique    Grade = "unique"
)

// AllGrades returns all grades from lowest to highest rarity.
func AllGrades() []Grade {
	return []Grade{GradeCommon, GradeRare, GradeEpic, GradeLegendary, GradeUnique}
}

// drawOrder is the order cumulative thresholds are tested in: rarest first.
var drawOrder = [...]Grade{GradeUnique, GradeLegendary, GradeEpic, GradeRare, GradeCommon}

// Rank returns 1 for common up to 5 for unique, 0 for unknown grades.
func (g Grade) Rank() int {
	switch g {
	case GradeCommon:
		return 1
	case GradeRare:
		return 2
	case GradeEpic:
		return 3
	case GradeLegendary:
		return 4
	case GradeUnique:
		return 5
	default:
		return 0
	}
}

// Valid reports whether g is one of the five known grades.
func (g Grade) Valid() bool { return g.Rank() > 0 }

// DisplayName returns the in-game label shown to players.
func (g Grade) DisplayName() string {
	switch g {
	case GradeCommon:
		return "일반"
	case GradeRare:
		return "희귀"
	case GradeEpic:
		return "에픽"
	case GradeLegendary:
		return "전설"
	case GradeUnique:
		return "유니크"
	default:
		return string(g)
	}
}

// DefaultGemIDs returns the stock candidate ids for g: [3r-2, 3r-1, 3r] where r is the rank.
func DefaultGemIDs(g Grade) []int {
	r := g.Rank()
	if r == 0 {
		return nil
	}
	return []int{3*r - 2, 3*r - 1, 3 * r}
}
