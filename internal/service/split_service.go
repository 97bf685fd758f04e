package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/auth"
	"github.com/mmynk/splitcollect/internal/collect"
	"github.com/mmynk/splitcollect/internal/links"
	"github.com/mmynk/splitcollect/internal/middleware"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
	"github.com/mmynk/splitcollect/pkg/api"
)

var _ api.SplitServiceHandler = (*SplitService)(nil)

// SplitService implements the collector-facing SplitService.
// Every call requires an authenticated collector.
type SplitService struct {
	orchestrator *collect.Orchestrator
	contacts     storage.ContactStore
	users        storage.UserStore
	links        *links.Builder
	logger       *slog.Logger
}

// NewSplitService creates a new SplitService.
func NewSplitService(orchestrator *collect.Orchestrator, contacts storage.ContactStore, users storage.UserStore, builder *links.Builder, logger *slog.Logger) *SplitService {
	return &SplitService{
		orchestrator: orchestrator,
		contacts:     contacts,
		users:        users,
		links:        builder,
		logger:       logger,
	}
}

// requireUser returns the authenticated collector's ID.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// PreviewAllocation computes shares without storing anything.
func (s *SplitService) PreviewAllocation(ctx context.Context, req *connect.Request[api.PreviewAllocationRequest]) (*connect.Response[api.PreviewAllocationResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	participants, err := s.resolveParticipants(ctx, userID, req.Msg.Participants)
	if err != nil {
		return nil, err
	}

	// Purpose is not part of a preview but the draft requires one.
	alloc, err := s.orchestrator.Preview(models.DraftSplit{
		Mode:         models.AllocationMode(req.Msg.Mode),
		Total:        req.Msg.Total,
		Purpose:      "preview",
		Participants: participants,
	})
	if err != nil {
		return nil, toConnectError(s.logger, "PreviewAllocation", err)
	}

	resp := &api.PreviewAllocationResponse{
		Shares:     make([]api.Share, 0, len(alloc.Shares)),
		OwnerShare: alloc.OwnerShare,
	}
	for _, share := range alloc.Shares {
		resp.Shares = append(resp.Shares, api.Share{Name: share.Name, Phone: share.Phone, Amount: share.Amount})
	}
	return connect.NewResponse(resp), nil
}

// CreateSplit allocates and stores a new split.
func (s *SplitService) CreateSplit(ctx context.Context, req *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	participants, err := s.resolveParticipants(ctx, userID, req.Msg.Participants)
	if err != nil {
		return nil, err
	}

	payeeVPA, payeeName, err := s.payee(ctx, userID, req.Msg.PayeeVPA, req.Msg.PayeeName)
	if err != nil {
		return nil, err
	}

	splitID, err := s.orchestrator.CreateSplit(ctx, userID, models.DraftSplit{
		Mode:         models.AllocationMode(req.Msg.Mode),
		Total:        req.Msg.Total,
		Purpose:      req.Msg.Purpose,
		PayeeVPA:     payeeVPA,
		PayeeName:    payeeName,
		Participants: participants,
	})
	if err != nil {
		return nil, toConnectError(s.logger, "CreateSplit", err)
	}
	s.logger.Info("Split created", "split_id", splitID, "user_id", userID, "participants", len(participants))

	view, err := s.ownedView(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CreateSplitResponse{Split: view}), nil
}

// CreateRequest stores a 1:1 payment request.
func (s *SplitService) CreateRequest(ctx context.Context, req *connect.Request[api.CreateRequestRequest]) (*connect.Response[api.CreateRequestResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name, phone := req.Msg.Name, req.Msg.Phone
	if req.Msg.ContactID != "" {
		contact, err := s.ownedContact(ctx, userID, req.Msg.ContactID)
		if err != nil {
			return nil, err
		}
		name, phone = contact.Name, contact.Phone
	}

	payeeVPA, payeeName, err := s.payee(ctx, userID, req.Msg.PayeeVPA, req.Msg.PayeeName)
	if err != nil {
		return nil, err
	}

	splitID, err := s.orchestrator.CreateSingleRequest(ctx, userID, collect.RequestInput{
		Name:      name,
		Phone:     phone,
		Amount:    req.Msg.Amount,
		Note:      req.Msg.Note,
		PayeeVPA:  payeeVPA,
		PayeeName: payeeName,
	})
	if err != nil {
		return nil, toConnectError(s.logger, "CreateRequest", err)
	}
	s.logger.Info("Request created", "split_id", splitID, "user_id", userID)

	view, err := s.ownedView(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CreateRequestResponse{Split: view}), nil
}

// GetSplit returns one of the caller's splits with live status.
func (s *SplitService) GetSplit(ctx context.Context, req *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.SplitID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("split_id required"))
	}

	view, err := s.ownedView(ctx, userID, req.Msg.SplitID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetSplitResponse{Split: view}), nil
}

// ListSplits returns the caller's splits and requests, newest first.
func (s *SplitService) ListSplits(ctx context.Context, req *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.orchestrator.ListSplits(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListSplits", err)
	}

	splits := make([]api.Split, 0, len(statuses))
	for _, st := range statuses {
		splits = append(splits, s.toAPISplit(st))
	}
	return connect.NewResponse(&api.ListSplitsResponse{Splits: splits}), nil
}

// GetSummary aggregates what the caller is still owed.
func (s *SplitService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	out, err := s.orchestrator.Summary(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetSummary", err)
	}

	resp := &api.GetSummaryResponse{
		Pending:    out.Pending,
		Declared:   out.Declared,
		Verified:   out.Verified,
		Mismatched: out.Mismatched,
		OwnShare:   out.OwnShare,
		Dues:       make([]api.PersonDue, 0, len(out.Dues)),
	}
	for _, due := range out.Dues {
		resp.Dues = append(resp.Dues, api.PersonDue{
			Name:   due.Name,
			Phone:  due.Phone,
			Amount: due.Amount,
			Splits: due.Splits,
		})
	}
	return connect.NewResponse(resp), nil
}

// payee falls back to the collector's UPI profile when no payee VPA is given.
// The payee name defaults to the profile's, then to the display name.
func (s *SplitService) payee(ctx context.Context, userID, vpa, name string) (string, string, error) {
	if strings.TrimSpace(vpa) != "" {
		return vpa, name, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return vpa, name, nil
	}
	if err != nil {
		return "", "", toConnectError(s.logger, "GetUserByID", err)
	}
	if user.PayeeVPA == "" {
		return vpa, name, nil
	}

	if strings.TrimSpace(name) == "" {
		name = user.PayeeName
		if name == "" {
			name = user.DisplayName
		}
	}
	return user.PayeeVPA, name, nil
}

// resolveParticipants copies contact details into draft participants.
func (s *SplitService) resolveParticipants(ctx context.Context, userID string, inputs []api.ParticipantInput) ([]models.DraftParticipant, error) {
	participants := make([]models.DraftParticipant, 0, len(inputs))
	for _, in := range inputs {
		p := models.DraftParticipant{Name: in.Name, Phone: in.Phone, Amount: in.Amount}
		if in.ContactID != "" {
			contact, err := s.ownedContact(ctx, userID, in.ContactID)
			if err != nil {
				return nil, err
			}
			p.Name, p.Phone = contact.Name, contact.Phone
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (s *SplitService) ownedContact(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	contact, err := s.contacts.GetContact(ctx, contactID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetContact", err)
	}
	if contact.OwnerID != userID {
		return nil, permissionDenied("contact")
	}
	return contact, nil
}

func (s *SplitService) ownedView(ctx context.Context, userID, splitID string) (api.Split, error) {
	st, err := s.orchestrator.GetStatus(ctx, splitID)
	if err != nil {
		return api.Split{}, toConnectError(s.logger, "GetSplit", err)
	}
	if st.Split.OwnerID != userID {
		return api.Split{}, permissionDenied("split")
	}
	return s.toAPISplit(st), nil
}

func (s *SplitService) toAPISplit(st *collect.Status) api.Split {
	split := st.Split
	out := api.Split{
		ID:           split.ID,
		Kind:         string(split.Kind),
		Purpose:      split.Purpose,
		Total:        split.Total,
		Mode:         string(split.Mode),
		OwnerShare:   split.OwnerShare,
		PayeeVPA:     split.PayeeVPA,
		PayeeName:    split.PayeeName,
		CreatedAt:    split.CreatedAt,
		Participants: make([]api.Participant, 0, len(split.Participants)),
		Counts: api.StatusCounts{
			Pending:        st.Counts.Pending,
			CashCodeIssued: st.Counts.CashCodeIssued,
			Declared:       st.Counts.Declared,
			Verified:       st.Counts.Verified,
			Mismatched:     st.Counts.Mismatched,
		},
		Collected:   st.Collected,
		Outstanding: st.Outstanding,
		Settled:     st.Settled,
	}

	for _, p := range split.Participants {
		collectURL := s.links.CollectURL(p.ID)
		message := s.links.Compose(links.Message{
			Purpose: split.Purpose,
			Amount:  p.Amount,
			Date:    split.CreatedAt,
			Link:    collectURL,
		})
		out.Participants = append(out.Participants, api.Participant{
			ID:          p.ID,
			Name:        p.Name,
			Phone:       p.Phone,
			Amount:      p.Amount,
			Status:      string(p.Status),
			Method:      string(p.Method),
			Reference:   deref(p.Reference),
			CashCode:    deref(p.CashCode),
			PaidAt:      p.PaidAt,
			CollectURL:  collectURL,
			WhatsAppURL: links.WhatsAppURL(p.Phone, message),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
