package priority

// Strategy selects which sub-score (or combination) becomes the final score.
type Strategy string

// Supported strategies.
const (
	StrategyFastest      Strategy = "fastest"
	StrategyImpact       Strategy = "impact"
	StrategyDeadline     Strategy = "deadline"
	StrategySmartBalance Strategy = "smart_balance"
)

// DefaultStrategy is used when no strategy, or an unknown one, is requested.
const DefaultStrategy = StrategySmartBalance

// Strategies lists every supported strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyFastest, StrategyImpact, StrategyDeadline, StrategySmartBalance}
}

// ParseStrategy maps a name to a Strategy. Unknown names, including the
// empty string, fall back to DefaultStrategy rather than failing.
func ParseStrategy(name string) Strategy {
	s := Strategy(name)
	if s.IsValid() {
		return s
	}
	return DefaultStrategy
}

// IsValid reports whether s is one of the supported strategies.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyFastest, StrategyImpact, StrategyDeadline, StrategySmartBalance:
		return true
	default:
		return false
	}
}

// label is the first line of every explanation produced under s.
func (s Strategy) label() string {
	switch s {
	case StrategyFastest:
		return "Prioritized based on effort (Fastest Wins strategy)"
	case StrategyImpact:
		return "Prioritized based on importance (High Impact strategy)"
	case StrategyDeadline:
		return "Prioritized based on deadline (Deadline Driven strategy)"
	default:
		return "Balanced priority calculation (Smart Balance strategy)"
	}
}
