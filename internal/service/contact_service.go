package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
	"github.com/mmynk/splitcollect/pkg/api"
)

var _ api.ContactServiceHandler = (*ContactService)(nil)

const (
	maxContactName  = 100
	maxContactPhone = 20
)

// ContactService implements the collector's address book.
type ContactService struct {
	store  storage.ContactStore
	logger *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(store storage.ContactStore, logger *slog.Logger) *ContactService {
	return &ContactService{store: store, logger: logger}
}

// AddContact stores a new contact for the caller.
func (s *ContactService) AddContact(ctx context.Context, req *connect.Request[api.AddContactRequest]) (*connect.Response[api.AddContactResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name, phone, err := contactFields(req.Msg.Name, req.Msg.Phone)
	if err != nil {
		return nil, err
	}

	contact := &models.Contact{OwnerID: userID, Name: name, Phone: phone}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, toConnectError(s.logger, "AddContact", err)
	}
	return connect.NewResponse(&api.AddContactResponse{Contact: toAPIContact(contact)}), nil
}

// ListContacts returns the caller's contacts in creation order.
func (s *ContactService) ListContacts(ctx context.Context, req *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := s.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListContacts", err)
	}

	resp := &api.ListContactsResponse{Contacts: make([]api.Contact, 0, len(contacts))}
	for _, c := range contacts {
		resp.Contacts = append(resp.Contacts, toAPIContact(c))
	}
	return connect.NewResponse(resp), nil
}

// UpdateContact changes a contact's name and phone. Existing splits keep
// the details they were created with.
func (s *ContactService) UpdateContact(ctx context.Context, req *connect.Request[api.UpdateContactRequest]) (*connect.Response[api.UpdateContactResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	contact, err := s.owned(ctx, userID, req.Msg.ContactID)
	if err != nil {
		return nil, err
	}

	contact.Name, contact.Phone, err = contactFields(req.Msg.Name, req.Msg.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateContact(ctx, contact); err != nil {
		return nil, toConnectError(s.logger, "UpdateContact", err)
	}
	return connect.NewResponse(&api.UpdateContactResponse{Contact: toAPIContact(contact)}), nil
}

// DeleteContact removes a contact from the caller's address book.
func (s *ContactService) DeleteContact(ctx context.Context, req *connect.Request[api.DeleteContactRequest]) (*connect.Response[api.DeleteContactResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.owned(ctx, userID, req.Msg.ContactID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteContact(ctx, req.Msg.ContactID); err != nil {
		return nil, toConnectError(s.logger, "DeleteContact", err)
	}
	return connect.NewResponse(&api.DeleteContactResponse{}), nil
}

func (s *ContactService) owned(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	if contactID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("contact_id required"))
	}
	contact, err := s.store.GetContact(ctx, contactID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetContact", err)
	}
	if contact.OwnerID != userID {
		return nil, permissionDenied("contact")
	}
	return contact, nil
}

func contactFields(name, phone string) (string, string, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	switch {
	case name == "":
		return "", "", connect.NewError(connect.CodeInvalidArgument, errors.New("name is required"))
	case len(name) > maxContactName:
		return "", "", connect.NewError(connect.CodeInvalidArgument, errors.New("name is too long"))
	case len(phone) > maxContactPhone:
		return "", "", connect.NewError(connect.CodeInvalidArgument, errors.New("phone is too long"))
	}
	return name, phone, nil
}

func toAPIContact(c *models.Contact) api.Contact {
	return api.Contact{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
