package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleTagsEveryImage(t *testing.T) {
	detector := &fakeDetector{labels: [][]string{
		{"chair"},
		{"person", "credit_card"},
		{},
		{"door"},
	}}
	assembler := NewAssembler(detector)

	dossier, err := assembler.Assemble(context.Background(), [][]byte{{1}, {2}, {3}, {4}})
	require.NoError(t, err)

	require.Len(t, dossier.Images, 4)
	for i, img := range dossier.Images {
		assert.Equal(t, i, img.SourceImageIndex)
	}
	// Per-image detection order comes straight from the upstream response.
	require.Len(t, dossier.Images[1].Detections, 2)
	assert.Equal(t, "person", dossier.Images[1].Detections[0].Label)
	assert.Equal(t, "credit_card", dossier.Images[1].Detections[1].Label)
	assert.Equal(t, 1, dossier.Images[1].Detections[0].SourceImageIndex)
}

func TestAssemblePropagatesFirstFailure(t *testing.T) {
	detector := &fakeDetector{err: errors.New("upstream down"), errAt: 1}
	assembler := NewAssembler(detector)

	_, err := assembler.Assemble(context.Background(), [][]byte{{1}, {2}, {3}})
	require.Error(t, err)
	assert.Equal(t, 2, detector.calls)
}
