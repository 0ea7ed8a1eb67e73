package model

// SourceStatus is the terminal state of a Source after a scan.
type SourceStatus int

const (
	// StatusRegistered means a Gamemode was built and handed to the sink.
	StatusRegistered SourceStatus = iota
	// StatusSkipped means the Source was ignored (unknown config kind).
	StatusSkipped
	// StatusFailed means the Source produced no Gamemode.
	StatusFailed
	// StatusValid means the Source passed validation (list mode only).
	StatusValid
)

func (s SourceStatus) String() string {
	switch s {
	case StatusRegistered:
		return "registered"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusValid:
		return "valid"
	}

	return "unknown"
}

// SourceResult describes what the pipeline did with one Source.
type SourceResult struct {
	Source   Source
	Kind     ConfigKind
	Status   SourceStatus
	Gamemode string  // name of the registered gamemode, if any
	Err      error   // terminal error for skipped/failed sources
	Warnings []error // non-fatal resolution warnings
}

// ScanReport aggregates the results of one scan.
type ScanReport struct {
	Results []SourceResult
}

// Count returns how many results have the given status.
func (r ScanReport) Count(status SourceStatus) int {
	count := 0

	for _, result := range r.Results {
		if result.Status == status {
			count++
		}
	}

	return count
}
