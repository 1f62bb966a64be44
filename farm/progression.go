package farm

// Action is something the player does that earns XP.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionMilk  Action = "milk"
	ActionBreed Action = "breed"
	ActionCraft Action = "craft"
)

var xpTable = map[Action]int{
	ActionFeed:  1,
	ActionMilk:  5,
	ActionBreed: 10,
	ActionCraft: 3,
}

// levelThresholds[i] is the XP needed to reach level i+1.
var levelThresholds = []int{0, 10, 30, 60, 100, 150, 220, 300, 400, 520}

// XPFor returns the XP granted for one action. Unknown actions grant none.
func XPFor(a Action) int { return xpTable[a] }

// LevelForXP returns the level reached with xp, starting at 1 and capped at
// MaxLevel.
func LevelForXP(xp int) int {
	level := 1
	for i, need := range levelThresholds {
		if xp >= need {
			level = i + 1
		}
	}
	return level
}

// XPForLevel returns the XP needed to reach level. Levels outside
// [1, MaxLevel] are clamped.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level-1]
}

// MaxLevel is the highest reachable level.
var MaxLevel = len(levelThresholds)
