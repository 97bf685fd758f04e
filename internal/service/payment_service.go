package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/links"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/payment"
	"github.com/mmynk/splitcollect/pkg/api"
)

var _ api.PaymentServiceHandler = (*PaymentService)(nil)

// CollectionStore is the storage the participant-facing service reads.
type CollectionStore interface {
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PaymentService implements the participant-facing PaymentService.
// It needs no login: the participant ID in the collection link is the
// only credential, and responses never carry the cash code.
type PaymentService struct {
	store     CollectionStore
	processor *payment.Processor
	links     *links.Builder
	logger    *slog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store CollectionStore, processor *payment.Processor, builder *links.Builder, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		store:     store,
		processor: processor,
		links:     builder,
		logger:    logger,
	}
}

// GetCollection returns what a participant owes and how to pay it.
func (s *PaymentService) GetCollection(ctx context.Context, req *connect.Request[api.GetCollectionRequest]) (*connect.Response[api.GetCollectionResponse], error) {
	if req.Msg.ParticipantID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("participant_id required"))
	}

	participant, err := s.store.GetParticipant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetCollection", err)
	}

	collection, err := s.collection(ctx, participant)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetCollectionResponse{Collection: collection}), nil
}

// DeclarePayment records a UPI or other digital payment.
func (s *PaymentService) DeclarePayment(ctx context.Context, req *connect.Request[api.DeclarePaymentRequest]) (*connect.Response[api.DeclarePaymentResponse], error) {
	participant, err := s.processor.DeclareDigital(ctx, req.Msg.ParticipantID, models.Method(req.Msg.Method), req.Msg.Reference)
	if err != nil {
		return nil, toConnectError(s.logger, "DeclarePayment", err)
	}
	s.logger.Info("Payment declared", "participant_id", participant.ID, "method", participant.Method)

	collection, err := s.collection(ctx, participant)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.DeclarePaymentResponse{Collection: collection}), nil
}

// RequestCash asks the collector for a cash code. The code is shown to the
// collector only, who hands it over when the cash changes hands.
func (s *PaymentService) RequestCash(ctx context.Context, req *connect.Request[api.RequestCashRequest]) (*connect.Response[api.RequestCashResponse], error) {
	participant, err := s.processor.RequestCash(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError(s.logger, "RequestCash", err)
	}
	s.logger.Info("Cash code issued", "participant_id", participant.ID)

	collection, err := s.collection(ctx, participant)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.RequestCashResponse{Collection: collection}), nil
}

// ConfirmCash checks the code the participant received and declares the payment.
func (s *PaymentService) ConfirmCash(ctx context.Context, req *connect.Request[api.ConfirmCashRequest]) (*connect.Response[api.ConfirmCashResponse], error) {
	participant, err := s.processor.ConfirmCash(ctx, req.Msg.ParticipantID, req.Msg.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCode) {
			s.logger.Warn("Cash code rejected", "participant_id", req.Msg.ParticipantID)
		}
		return nil, toConnectError(s.logger, "ConfirmCash", err)
	}
	s.logger.Info("Cash payment confirmed", "participant_id", participant.ID)

	collection, err := s.collection(ctx, participant)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ConfirmCashResponse{Collection: collection}), nil
}

func (s *PaymentService) collection(ctx context.Context, p *models.Participant) (api.Collection, error) {
	split, err := s.store.GetSplit(ctx, p.SplitID)
	if err != nil {
		return api.Collection{}, toConnectError(s.logger, "GetSplit", err)
	}

	out := api.Collection{
		ParticipantID: p.ID,
		Name:          p.Name,
		Amount:        p.Amount,
		Status:        string(p.Status),
		Method:        string(p.Method),
		Reference:     deref(p.Reference),
		PaidAt:        p.PaidAt,
		Kind:          string(split.Kind),
		Purpose:       split.Purpose,
		PayeeVPA:      split.PayeeVPA,
		PayeeName:     split.PayeeName,
	}

	owner, err := s.store.GetUserByID(ctx, split.OwnerID)
	switch {
	case err == nil:
		out.CollectorName = owner.DisplayName
	case !errors.Is(err, apperrors.ErrNotFound):
		return api.Collection{}, toConnectError(s.logger, "GetUserByID", err)
	}

	if p.Status == models.StatusPending && links.ValidVPA(split.PayeeVPA) {
		upiLinks, err := s.links.UPILinks(split.PayeeVPA, split.PayeeName, p.Amount, split.Purpose)
		if err != nil {
			return api.Collection{}, toConnectError(s.logger, "UPILinks", err)
		}
		out.UPILinks = make(map[string]string, len(upiLinks))
		for app, link := range upiLinks {
			out.UPILinks[string(app)] = link
		}
	}
	return out, nil
}
