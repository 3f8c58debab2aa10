package collab

// State is the lifecycle position of a collaboration run.
//
//	Idle → ValidatingParticipants → Rejected
//	                              → Analysis → Critique → Synthesis → Completed
//
// Faulted is reachable from Analysis, Critique and Synthesis. Rejected,
// Completed and Faulted are terminal.
type State int

const (
	StateIdle State = iota
	StateValidatingParticipants
	StateRejected
	StateAnalysis
	StateCritique
	StateSynthesis
	StateCompleted
	StateFaulted
)

var stateNames = map[State]string{
	StateIdle:                   "idle",
	StateValidatingParticipants: "validating_participants",
	StateRejected:               "rejected",
	StateAnalysis:               "analysis",
	StateCritique:               "critique",
	StateSynthesis:              "synthesis",
	StateCompleted:              "completed",
	StateFaulted:                "faulted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateCompleted || s == StateFaulted
}
