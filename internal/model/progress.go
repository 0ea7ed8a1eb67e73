package model

// PhaseState is the completion of one named loading phase.
type PhaseState struct {
	Name     string
	Fraction float64
}

// ProgressSnapshot is a point-in-time copy of the progress aggregator.
type ProgressSnapshot struct {
	Phases   []PhaseState // in registration order
	Expected int
	Complete bool
}

// Overall returns the mean completion over the expected phases.
func (s ProgressSnapshot) Overall() float64 {
	if s.Expected == 0 {
		if s.Complete {
			return 1
		}

		return 0
	}

	total := 0.0
	for _, phase := range s.Phases {
		total += phase.Fraction
	}

	overall := total / float64(s.Expected)
	if overall > 1 {
		return 1
	}

	return overall
}
