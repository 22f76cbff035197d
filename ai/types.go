package ai

// EntitySet groups extracted entities by category. The same shape is used for
// a single fragment's output and for the union handed to the Consolidator.
type EntitySet struct {
	// Companies lists organizations, agencies and legal entities.
	Companies []string

	// Persons lists full names of individuals.
	Persons []string

	// Events lists resolutions, agreements and other notable happenings.
	Events []string
}

// IsEmpty reports whether the set contains no entities in any category.
func (s EntitySet) IsEmpty() bool {
	return len(s.Companies) == 0 && len(s.Persons) == 0 && len(s.Events) == 0
}

// Consolidated is the Consolidator's output: cleaned entity lists plus a
// short document summary.
type Consolidated struct {
	Summary   string
	Companies []string
	Persons   []string
	Events    []string
}
