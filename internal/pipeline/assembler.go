package pipeline

import (
	"context"

	"stature/internal/dao"
)

// Detector is the vision client adapter seam.
type Detector interface {
	Detect(ctx context.Context, image []byte, index int) (*dao.ImageAnalysis, error)
}

// Assembler fans the detector out over all submitted images and builds the
// consolidated dossier.
type Assembler struct {
	detector Detector
}

func NewAssembler(d Detector) *Assembler {
	return &Assembler{detector: d}
}

// Assemble runs detection per image, sequentially in submission order so the
// source index tagging stays reproducible. The first failure propagates
// unchanged; the orchestrator decides the refund policy.
func (a *Assembler) Assemble(ctx context.Context, images [][]byte) (*dao.Dossier, error) {
	dossier := &dao.Dossier{Images: make([]dao.ImageAnalysis, 0, len(images))}
	for i, img := range images {
		analysis, err := a.detector.Detect(ctx, img, i)
		if err != nil {
			return nil, err
		}
		dossier.Images = append(dossier.Images, *analysis)
	}
	return dossier, nil
}
