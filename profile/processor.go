package profile

import (
	"context"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
)

// Processor retrieves and stores compatibility profiles held by the profile
// store service.
type Processor interface {
	GetById(memberId uint32) (Model, error)
	ByIdProvider(memberId uint32) model.Provider[Model]
	Store(memberId uint32, background ReligiousBackground, answers Answers) (Model, error)
}

type ProcessorImpl struct {
	l   logrus.FieldLogger
	ctx context.Context
	t   tenant.Model
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context) Processor {
	return &ProcessorImpl{
		l:   l,
		ctx: ctx,
		t:   tenant.MustFromContext(ctx),
	}
}

func (p *ProcessorImpl) ByIdProvider(memberId uint32) model.Provider[Model] {
	return func() (Model, error) {
		rm, err := requestById(memberId)(p.l, p.ctx)
		if err != nil {
			return Model{}, err
		}
		rm.MemberId = memberId
		return Extract(rm), nil
	}
}

func (p *ProcessorImpl) GetById(memberId uint32) (Model, error) {
	return p.ByIdProvider(memberId)()
}

func (p *ProcessorImpl) Store(memberId uint32, background ReligiousBackground, answers Answers) (Model, error) {
	input := Transform(NewModel(memberId, background, answers))
	rm, err := requestStore(memberId, input)(p.l, p.ctx)
	if err != nil {
		return Model{}, err
	}
	rm.MemberId = memberId
	return Extract(rm), nil
}
