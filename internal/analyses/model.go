package analyses

import "time"

// Analysis is the structured (and raw) model output for one document.
type Analysis struct {
	ID                       string
	DocumentID               string
	ProjectName              string
	ProjectDuration          string
	HumanResourcesHierarchy  string
	ProjectStages            string
	SpecialConditions        string
	ImplementationBoundaries string
	RawAnalysis              string
	AnalyzedAt               time.Time
}

// Fields holds the six structured values parsed out of a model reply.
// Absent or non-string values stay empty.
type Fields struct {
	ProjectName              string
	ProjectDuration          string
	HumanResourcesHierarchy  string
	ProjectStages            string
	SpecialConditions        string
	ImplementationBoundaries string
}
