package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceHandler is implemented by the authentication service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error)
}

// SplitServiceHandler is implemented by the collector-facing split service.
type SplitServiceHandler interface {
	PreviewAllocation(context.Context, *connect.Request[PreviewAllocationRequest]) (*connect.Response[PreviewAllocationResponse], error)
	CreateSplit(context.Context, *connect.Request[CreateSplitRequest]) (*connect.Response[CreateSplitResponse], error)
	CreateRequest(context.Context, *connect.Request[CreateRequestRequest]) (*connect.Response[CreateRequestResponse], error)
	GetSplit(context.Context, *connect.Request[GetSplitRequest]) (*connect.Response[GetSplitResponse], error)
	ListSplits(context.Context, *connect.Request[ListSplitsRequest]) (*connect.Response[ListSplitsResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// PaymentServiceHandler is implemented by the participant-facing payment service.
type PaymentServiceHandler interface {
	GetCollection(context.Context, *connect.Request[GetCollectionRequest]) (*connect.Response[GetCollectionResponse], error)
	DeclarePayment(context.Context, *connect.Request[DeclarePaymentRequest]) (*connect.Response[DeclarePaymentResponse], error)
	RequestCash(context.Context, *connect.Request[RequestCashRequest]) (*connect.Response[RequestCashResponse], error)
	ConfirmCash(context.Context, *connect.Request[ConfirmCashRequest]) (*connect.Response[ConfirmCashResponse], error)
}

// ReconcileServiceHandler is implemented by the reconciliation service.
type ReconcileServiceHandler interface {
	ReconcileLedger(context.Context, *connect.Request[ReconcileLedgerRequest]) (*connect.Response[ReconcileLedgerResponse], error)
}

// ContactServiceHandler is implemented by the address book service.
type ContactServiceHandler interface {
	AddContact(context.Context, *connect.Request[AddContactRequest]) (*connect.Response[AddContactResponse], error)
	ListContacts(context.Context, *connect.Request[ListContactsRequest]) (*connect.Response[ListContactsResponse], error)
	UpdateContact(context.Context, *connect.Request[UpdateContactRequest]) (*connect.Response[UpdateContactResponse], error)
	DeleteContact(context.Context, *connect.Request[DeleteContactRequest]) (*connect.Response[DeleteContactResponse], error)
}

// handlerOptions puts the JSON codec ahead of caller options.
func handlerOptions(opts []connect.HandlerOption) connect.HandlerOption {
	return connect.WithHandlerOptions(append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)...)
}

// serviceMux routes each procedure path of one service to its handler.
func serviceMux(service string, handlers map[string]*connect.Handler) (string, http.Handler) {
	mux := http.NewServeMux()
	for procedure, h := range handlers {
		mux.Handle(procedure, h)
	}
	return "/" + service + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return serviceMux(AuthServiceName, map[string]*connect.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, o),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, o),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, o),
		AuthServiceUpdateProfileProcedure:  connect.NewUnaryHandler(AuthServiceUpdateProfileProcedure, svc.UpdateProfile, o),
	})
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return serviceMux(SplitServiceName, map[string]*connect.Handler{
		SplitServicePreviewAllocationProcedure: connect.NewUnaryHandler(SplitServicePreviewAllocationProcedure, svc.PreviewAllocation, o),
		SplitServiceCreateSplitProcedure:       connect.NewUnaryHandler(SplitServiceCreateSplitProcedure, svc.CreateSplit, o),
		SplitServiceCreateRequestProcedure:     connect.NewUnaryHandler(SplitServiceCreateRequestProcedure, svc.CreateRequest, o),
		SplitServiceGetSplitProcedure:          connect.NewUnaryHandler(SplitServiceGetSplitProcedure, svc.GetSplit, o),
		SplitServiceListSplitsProcedure:        connect.NewUnaryHandler(SplitServiceListSplitsProcedure, svc.ListSplits, o),
		SplitServiceGetSummaryProcedure:        connect.NewUnaryHandler(SplitServiceGetSummaryProcedure, svc.GetSummary, o),
	})
}

// NewPaymentServiceHandler builds an HTTP handler from the service implementation.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return serviceMux(PaymentServiceName, map[string]*connect.Handler{
		PaymentServiceGetCollectionProcedure:  connect.NewUnaryHandler(PaymentServiceGetCollectionProcedure, svc.GetCollection, o),
		PaymentServiceDeclarePaymentProcedure: connect.NewUnaryHandler(PaymentServiceDeclarePaymentProcedure, svc.DeclarePayment, o),
		PaymentServiceRequestCashProcedure:    connect.NewUnaryHandler(PaymentServiceRequestCashProcedure, svc.RequestCash, o),
		PaymentServiceConfirmCashProcedure:    connect.NewUnaryHandler(PaymentServiceConfirmCashProcedure, svc.ConfirmCash, o),
	})
}

// NewReconcileServiceHandler builds an HTTP handler from the service implementation.
func NewReconcileServiceHandler(svc ReconcileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return serviceMux(ReconcileServiceName, map[string]*connect.Handler{
		ReconcileServiceReconcileLedgerProcedure: connect.NewUnaryHandler(ReconcileServiceReconcileLedgerProcedure, svc.ReconcileLedger, o),
	})
}

// NewContactServiceHandler builds an HTTP handler from the service implementation.
func NewContactServiceHandler(svc ContactServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return serviceMux(ContactServiceName, map[string]*connect.Handler{
		ContactServiceAddContactProcedure:    connect.NewUnaryHandler(ContactServiceAddContactProcedure, svc.AddContact, o),
		ContactServiceListContactsProcedure:  connect.NewUnaryHandler(ContactServiceListContactsProcedure, svc.ListContacts, o),
		ContactServiceUpdateContactProcedure: connect.NewUnaryHandler(ContactServiceUpdateContactProcedure, svc.UpdateContact, o),
		ContactServiceDeleteContactProcedure: connect.NewUnaryHandler(ContactServiceDeleteContactProcedure, svc.DeleteContact, o),
	})
}
