package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/metrics"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
)

// ParticipantStore is the slice of storage the processor needs.
type ParticipantStore interface {
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	GetParticipantByReference(ctx context.Context, reference string) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, p *models.Participant, expected models.Status) error
}

// Processor runs participant transitions against storage.
// Every write is conditioned on the pre-state the transition was computed
// from, so of two racing declarations only the first is stored.
type Processor struct {
	store   ParticipantStore
	now     func() time.Time
	newCode func() (string, error)
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the time source used for PaidAt.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithCodeGenerator overrides the cash code generator.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(p *Processor) { p.newCode = gen }
}

// NewProcessor creates a Processor backed by store.
func NewProcessor(store ParticipantStore, opts ...Option) *Processor {
	p := &Processor{
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		newCode: NewCashCode,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DeclareDigital records a digital payment with its reference.
func (p *Processor) DeclareDigital(ctx context.Context, participantID string, method models.Method, reference string) (*models.Participant, error) {
	participant, err := p.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	next := *participant
	if err := DeclareDigital(&next, method, reference, p.now()); err != nil {
		return nil, err
	}

	holder, err := p.store.GetParticipantByReference(ctx, *next.Reference)
	switch {
	case err == nil && holder.ID != next.ID:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, *next.Reference)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	if err := p.write(ctx, &next, participant.Status); err != nil {
		return nil, err
	}
	return &next, nil
}

// RequestCash issues a cash code for the participant.
// The code is returned on the participant so the collector can hand it over.
func (p *Processor) RequestCash(ctx context.Context, participantID string) (*models.Participant, error) {
	participant, err := p.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	code, err := p.newCode()
	if err != nil {
		return nil, err
	}

	next := *participant
	if err := RequestCash(&next, code); err != nil {
		return nil, err
	}
	if err := p.write(ctx, &next, participant.Status); err != nil {
		return nil, err
	}
	return &next, nil
}

// ConfirmCash checks the supplied code and marks the cash payment declared.
func (p *Processor) ConfirmCash(ctx context.Context, participantID, code string) (*models.Participant, error) {
	participant, err := p.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	next := *participant
	if err := ConfirmCash(&next, code, p.now()); err != nil {
		return nil, err
	}
	if err := p.write(ctx, &next, participant.Status); err != nil {
		return nil, err
	}
	return &next, nil
}

func (p *Processor) write(ctx context.Context, next *models.Participant, expected models.Status) error {
	err := p.store.UpdateParticipant(ctx, next, expected)
	if errors.Is(err, storage.ErrStatusConflict) {
		return fmt.Errorf("%w: participant %s changed while declaring", apperrors.ErrAlreadyDeclared, next.ID)
	}
	if err != nil {
		return err
	}
	metrics.ParticipantTransitions.WithLabelValues(string(next.Status)).Inc()
	return nil
}
