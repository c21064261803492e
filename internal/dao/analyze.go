package dao

// SubjectLabel is the detection label that marks the primary subject.
const SubjectLabel = "person"

type BoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Detection struct {
	SourceImageIndex int         `json:"sourceImageIndex"`
	Label            string      `json:"label"`
	Box              BoundingBox `json:"box"`
	Confidence       float64     `json:"confidence,omitempty"`
}

type FaceDetection struct {
	SourceImageIndex int         `json:"sourceImageIndex"`
	Age              int         `json:"age"`
	SexLabel         string      `json:"sexLabel"`
	Box              BoundingBox `json:"box"`
}

// ImageAnalysis holds the normalized detections for one submitted image.
type ImageAnalysis struct {
	SourceImageIndex int             `json:"sourceImageIndex"`
	Detections       []Detection     `json:"detections"`
	Faces            []FaceDetection `json:"faces,omitempty"`
}

// Dossier is the consolidated per-image analysis passed to the reasoning
// upstream. Images are ordered by submission index.
type Dossier struct {
	Images []ImageAnalysis `json:"images"`
}

// ContainsSubject reports whether any detection across any image is a person.
func (d *Dossier) ContainsSubject() bool {
	for _, img := range d.Images {
		for _, det := range img.Detections {
			if det.Label == SubjectLabel {
				return true
			}
		}
	}
	return false
}

type AnalyzeRequest struct {
	Images []string `json:"images" binding:"required,min=1,max=4,dive,datauri"`
}

type UsageResponse struct {
	Remaining int `json:"remaining"`
}
