package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) connect.ClientOption {
	return connect.WithClientOptions(append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)...)
}

// AuthServiceClient calls splitcollect.v1.AuthService.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
	updateProfile  *connect.Client[UpdateProfileRequest, UpdateProfileResponse]
}

// NewAuthServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	o := clientOptions(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, o),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, o),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, o),
		updateProfile:  connect.NewClient[UpdateProfileRequest, UpdateProfileResponse](httpClient, baseURL+AuthServiceUpdateProfileProcedure, o),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// SplitServiceClient calls splitcollect.v1.SplitService.
type SplitServiceClient struct {
	previewAllocation *connect.Client[PreviewAllocationRequest, PreviewAllocationResponse]
	createSplit       *connect.Client[CreateSplitRequest, CreateSplitResponse]
	createRequest     *connect.Client[CreateRequestRequest, CreateRequestResponse]
	getSplit          *connect.Client[GetSplitRequest, GetSplitResponse]
	listSplits        *connect.Client[ListSplitsRequest, ListSplitsResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
}

// NewSplitServiceClient constructs a client for the service at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	o := clientOptions(opts)
	return &SplitServiceClient{
		previewAllocation: connect.NewClient[PreviewAllocationRequest, PreviewAllocationResponse](httpClient, baseURL+SplitServicePreviewAllocationProcedure, o),
		createSplit:       connect.NewClient[CreateSplitRequest, CreateSplitResponse](httpClient, baseURL+SplitServiceCreateSplitProcedure, o),
		createRequest:     connect.NewClient[CreateRequestRequest, CreateRequestResponse](httpClient, baseURL+SplitServiceCreateRequestProcedure, o),
		getSplit:          connect.NewClient[GetSplitRequest, GetSplitResponse](httpClient, baseURL+SplitServiceGetSplitProcedure, o),
		listSplits:        connect.NewClient[ListSplitsRequest, ListSplitsResponse](httpClient, baseURL+SplitServiceListSplitsProcedure, o),
		getSummary:        connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+SplitServiceGetSummaryProcedure, o),
	}
}

func (c *SplitServiceClient) PreviewAllocation(ctx context.Context, req *connect.Request[PreviewAllocationRequest]) (*connect.Response[PreviewAllocationResponse], error) {
	return c.previewAllocation.CallUnary(ctx, req)
}

func (c *SplitServiceClient) CreateSplit(ctx context.Context, req *connect.Request[CreateSplitRequest]) (*connect.Response[CreateSplitResponse], error) {
	return c.createSplit.CallUnary(ctx, req)
}

func (c *SplitServiceClient) CreateRequest(ctx context.Context, req *connect.Request[CreateRequestRequest]) (*connect.Response[CreateRequestResponse], error) {
	return c.createRequest.CallUnary(ctx, req)
}

func (c *SplitServiceClient) GetSplit(ctx context.Context, req *connect.Request[GetSplitRequest]) (*connect.Response[GetSplitResponse], error) {
	return c.getSplit.CallUnary(ctx, req)
}

func (c *SplitServiceClient) ListSplits(ctx context.Context, req *connect.Request[ListSplitsRequest]) (*connect.Response[ListSplitsResponse], error) {
	return c.listSplits.CallUnary(ctx, req)
}

func (c *SplitServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// PaymentServiceClient calls splitcollect.v1.PaymentService.
type PaymentServiceClient struct {
	getCollection  *connect.Client[GetCollectionRequest, GetCollectionResponse]
	declarePayment *connect.Client[DeclarePaymentRequest, DeclarePaymentResponse]
	requestCash    *connect.Client[RequestCashRequest, RequestCashResponse]
	confirmCash    *connect.Client[ConfirmCashRequest, ConfirmCashResponse]
}

// NewPaymentServiceClient constructs a client for the service at baseURL.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	o := clientOptions(opts)
	return &PaymentServiceClient{
		getCollection:  connect.NewClient[GetCollectionRequest, GetCollectionResponse](httpClient, baseURL+PaymentServiceGetCollectionProcedure, o),
		declarePayment: connect.NewClient[DeclarePaymentRequest, DeclarePaymentResponse](httpClient, baseURL+PaymentServiceDeclarePaymentProcedure, o),
		requestCash:    connect.NewClient[RequestCashRequest, RequestCashResponse](httpClient, baseURL+PaymentServiceRequestCashProcedure, o),
		confirmCash:    connect.NewClient[ConfirmCashRequest, ConfirmCashResponse](httpClient, baseURL+PaymentServiceConfirmCashProcedure, o),
	}
}

func (c *PaymentServiceClient) GetCollection(ctx context.Context, req *connect.Request[GetCollectionRequest]) (*connect.Response[GetCollectionResponse], error) {
	return c.getCollection.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) DeclarePayment(ctx context.Context, req *connect.Request[DeclarePaymentRequest]) (*connect.Response[DeclarePaymentResponse], error) {
	return c.declarePayment.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) RequestCash(ctx context.Context, req *connect.Request[RequestCashRequest]) (*connect.Response[RequestCashResponse], error) {
	return c.requestCash.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) ConfirmCash(ctx context.Context, req *connect.Request[ConfirmCashRequest]) (*connect.Response[ConfirmCashResponse], error) {
	return c.confirmCash.CallUnary(ctx, req)
}

// ReconcileServiceClient calls splitcollect.v1.ReconcileService.
type ReconcileServiceClient struct {
	reconcileLedger *connect.Client[ReconcileLedgerRequest, ReconcileLedgerResponse]
}

// NewReconcileServiceClient constructs a client for the service at baseURL.
func NewReconcileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReconcileServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &ReconcileServiceClient{
		reconcileLedger: connect.NewClient[ReconcileLedgerRequest, ReconcileLedgerResponse](httpClient, baseURL+ReconcileServiceReconcileLedgerProcedure, clientOptions(opts)),
	}
}

func (c *ReconcileServiceClient) ReconcileLedger(ctx context.Context, req *connect.Request[ReconcileLedgerRequest]) (*connect.Response[ReconcileLedgerResponse], error) {
	return c.reconcileLedger.CallUnary(ctx, req)
}

// ContactServiceClient calls splitcollect.v1.ContactService.
type ContactServiceClient struct {
	addContact    *connect.Client[AddContactRequest, AddContactResponse]
	listContacts  *connect.Client[ListContactsRequest, ListContactsResponse]
	updateContact *connect.Client[UpdateContactRequest, UpdateContactResponse]
	deleteContact *connect.Client[DeleteContactRequest, DeleteContactResponse]
}

// NewContactServiceClient constructs a client for the service at baseURL.
func NewContactServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ContactServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	o := clientOptions(opts)
	return &ContactServiceClient{
		addContact:    connect.NewClient[AddContactRequest, AddContactResponse](httpClient, baseURL+ContactServiceAddContactProcedure, o),
		listContacts:  connect.NewClient[ListContactsRequest, ListContactsResponse](httpClient, baseURL+ContactServiceListContactsProcedure, o),
		updateContact: connect.NewClient[UpdateContactRequest, UpdateContactResponse](httpClient, baseURL+ContactServiceUpdateContactProcedure, o),
		deleteContact: connect.NewClient[DeleteContactRequest, DeleteContactResponse](httpClient, baseURL+ContactServiceDeleteContactProcedure, o),
	}
}

func (c *ContactServiceClient) AddContact(ctx context.Context, req *connect.Request[AddContactRequest]) (*connect.Response[AddContactResponse], error) {
	return c.addContact.CallUnary(ctx, req)
}

func (c *ContactServiceClient) ListContacts(ctx context.Context, req *connect.Request[ListContactsRequest]) (*connect.Response[ListContactsResponse], error) {
	return c.listContacts.CallUnary(ctx, req)
}

func (c *ContactServiceClient) UpdateContact(ctx context.Context, req *connect.Request[UpdateContactRequest]) (*connect.Response[UpdateContactResponse], error) {
	return c.updateContact.CallUnary(ctx, req)
}

func (c *ContactServiceClient) DeleteContact(ctx context.Context, req *connect.Request[DeleteContactRequest]) (*connect.Response[DeleteContactResponse], error) {
	return c.deleteContact.CallUnary(ctx, req)
}
