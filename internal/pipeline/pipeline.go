package pipeline

import (
	"context"
	"errors"

	"stature/internal/dao"
	"stature/internal/knowledge"
	"stature/internal/quota"
)

var (
	// ErrQuotaExhausted means no unit was available; nothing was reserved.
	ErrQuotaExhausted = errors.New("hourly analysis limit reached")
	// ErrNoSubject means no person was detected anywhere in the dossier.
	ErrNoSubject = errors.New("no person detected in any of the images")
)

// Reasoner is the reasoning client adapter seam.
type Reasoner interface {
	Reason(ctx context.Context, dossier *dao.Dossier, kb *knowledge.Base) (*dao.AnalysisReport, error)
}

// Pipeline composes quota, detection and reasoning into the end-to-end
// analyze flow: reserve, detect, subject check, reason, respond.
type Pipeline struct {
	quota     *quota.Tracker
	assembler *Assembler
	reasoner  Reasoner
	kb        *knowledge.Base
}

func New(q *quota.Tracker, a *Assembler, r Reasoner, kb *knowledge.Base) *Pipeline {
	return &Pipeline{
		quota:     q,
		assembler: a,
		reasoner:  r,
		kb:        kb,
	}
}

// Analyze runs one request through the pipeline. It reserves at most one
// quota unit and the deferred guard refunds it on every exit that does not
// produce a report, including panics and context cancellation. Net spend per
// request is 0 or 1, never more.
func (p *Pipeline) Analyze(ctx context.Context, images [][]byte) (*dao.AnalysisReport, error) {
	if !p.quota.TryReserve() {
		return nil, ErrQuotaExhausted
	}
	billed := false
	defer func() {
		if !billed {
			p.quota.Refund()
		}
	}()

	dossier, err := p.assembler.Assemble(ctx, images)
	if err != nil {
		return nil, err
	}
	if !dossier.ContainsSubject() {
		return nil, ErrNoSubject
	}

	report, err := p.reasoner.Reason(ctx, dossier, p.kb)
	if err != nil {
		return nil, err
	}

	billed = true
	return report, nil
}

// Remaining is a read-only snapshot for the usage endpoint.
func (p *Pipeline) Remaining() int {
	return p.quota.Remaining()
}
