package sampling

import "strings"

// Strategy 决定正样本与锚点之间的几何关系。
type Strategy string

const (
	// StrategyNone 不约束正样本位置，可与锚点重叠、被包含或不相交。
	StrategyNone Strategy = ""
	// StrategySubsuming 要求正样本完全落在锚点内部。
	StrategySubsuming Strategy = "subsuming"
	// StrategyAdjacent 要求正样本与锚点没有任何公共 token 下标。
	StrategyAdjacent Strategy = "adjacent"
)

// ParseStrategy 解析策略名；"", "none", "null" 均表示 StrategyNone。
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "null":
		return StrategyNone, nil
	case string(StrategySubsuming):
		return StrategySubsuming, nil
	case string(StrategyAdjacent):
		return StrategyAdjacent, nil
	default:
		return StrategyNone, invalidConfigf("unknown sampling strategy %q", name)
	}
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, "none", StrategySubsuming, StrategyAdjacent:
		return true
	default:
		return false
	}
}

func (s Strategy) String() string {
	if s == StrategyNone {
		return "none"
	}
	return string(s)
}
