package model

// Phase is a human-friendly label for a project year.
// Keep these values stable; they are intended for CSV output.
type Phase string

const (
	PhaseConstruction Phase = "CONSTRUCTION"
	PhaseOperations   Phase = "OPERATIONS"
)

func PhaseForYear(year, operationsStartYear int) Phase {
	if year < operationsStartYear {
		return PhaseConstruction
	}
	return PhaseOperations
}
