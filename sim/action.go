package sim

// Action is the behavior an agent selects for one tick.
type Action uint8

const (
	MoveForward Action = iota
	BreakRuleAndAdvance
	Sabotage
	Wait
	Avoid
	Exhausted
)

func (a Action) String() string {
	switch a {
	case MoveForward:
		return "move_forward"
	case BreakRuleAndAdvance:
		return "break_rule"
	case Sabotage:
		return "sabotage"
	case Wait:
		return "wait"
	case Avoid:
		return "avoid"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}
