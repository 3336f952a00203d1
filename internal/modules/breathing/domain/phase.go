package domain

// Phase is one of the three fixed-duration stages of the 4-4-6 pattern.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
)

type phaseSpec struct {
	seconds  int
	next     Phase
	name     string
	label    string
	guidance string
}

var phases = [...]phaseSpec{
	PhaseInhale: {seconds: 4, next: PhaseHold, name: "inhale", label: "Breathe In", guidance: "Slowly breathe in through your nose"},
	PhaseHold:   {seconds: 4, next: PhaseExhale, name: "hold", label: "Hold", guidance: "Hold your breath gently"},
	PhaseExhale: {seconds: 6, next: PhaseInhale, name: "exhale", label: "Breathe Out", guidance: "Slowly breathe out through your mouth"},
}

// Seconds is the fixed duration of the phase.
func (p Phase) Seconds() int { return phases[p].seconds }

// Next is the deterministic successor: inhale, hold, exhale, inhale.
func (p Phase) Next() Phase { return phases[p].next }

func (p Phase) String() string { return phases[p].name }

func (p Phase) Label() string { return phases[p].label }

func (p Phase) Guidance() string { return phases[p].guidance }

// CycleSeconds is the length of one full inhale-hold-exhale traversal.
func CycleSeconds() int {
	return PhaseInhale.Seconds() + PhaseHold.Seconds() + PhaseExhale.Seconds()
}
