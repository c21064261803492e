package dao

type VisualizationData struct {
	SourceImageIndex int         `json:"sourceImageIndex"`
	PersonBox        BoundingBox `json:"personBox"`
	ReferenceBox     BoundingBox `json:"referenceBox"`
}

// AnalysisReport is the reasoning upstream's structured answer, returned to
// the caller verbatim on success. Estimation, Methodology and
// ConfidenceScore are required; the rest depends on what the model chose to
// report.
type AnalysisReport struct {
	Estimation             string             `json:"estimation"`
	Methodology            string             `json:"methodology"`
	PostureCorrection      string             `json:"postureCorrection,omitempty"`
	ConfidenceScore        string             `json:"confidenceScore"`
	Caveats                interface{}        `json:"caveats,omitempty"`
	DemographicInference   string             `json:"demographicInference,omitempty"`
	PlausibilityAdjustment string             `json:"plausibilityAdjustment,omitempty"`
	VisualizationData      *VisualizationData `json:"visualizationData,omitempty"`
}
