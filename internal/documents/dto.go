package documents

import "time"

// AnalysisRecord is the analysis shape this package needs for listing;
// bootstrap adapts the analyses repo to it.
type AnalysisRecord struct {
	ID                       string
	ProjectName              string
	ProjectDuration          string
	HumanResourcesHierarchy  string
	ProjectStages            string
	SpecialConditions        string
	ImplementationBoundaries string
	AnalyzedAt               time.Time
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID          string            `json:"id"`
	FileName    string            `json:"fileName"`
	ContentType string            `json:"contentType"`
	FileSize    int64             `json:"fileSize"`
	UploadedAt  time.Time         `json:"uploadedAt"`
	Analysis    *AnalysisResponse `json:"analysis,omitempty"`
}

// AnalysisResponse is the nested analysis payload on a listed document.
type AnalysisResponse struct {
	ID                       string    `json:"id"`
	ProjectName              string    `json:"projectName,omitempty"`
	ProjectDuration          string    `json:"projectDuration,omitempty"`
	HumanResourcesHierarchy  string    `json:"humanResourcesHierarchy,omitempty"`
	ProjectStages            string    `json:"projectStages,omitempty"`
	SpecialConditions        string    `json:"specialConditions,omitempty"`
	ImplementationBoundaries string    `json:"implementationBoundaries,omitempty"`
	AnalyzedAt               time.Time `json:"analyzedAt"`
}

func toResponse(doc Document, analysis *AnalysisRecord) DocumentResponse {
	resp := DocumentResponse{
		ID:          doc.ID,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		FileSize:    doc.SizeBytes,
		UploadedAt:  doc.CreatedAt,
	}
	if analysis != nil {
		resp.Analysis = &AnalysisResponse{
			ID:                       analysis.ID,
			ProjectName:              analysis.ProjectName,
			ProjectDuration:          analysis.ProjectDuration,
			HumanResourcesHierarchy:  analysis.HumanResourcesHierarchy,
			ProjectStages:            analysis.ProjectStages,
			SpecialConditions:        analysis.SpecialConditions,
			ImplementationBoundaries: analysis.ImplementationBoundaries,
			AnalyzedAt:               analysis.AnalyzedAt,
		}
	}
	return resp
}
