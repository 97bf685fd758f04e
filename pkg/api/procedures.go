package api

// Fully-qualified service names.
const (
	AuthServiceName      = "splitcollect.v1.AuthService"
	SplitServiceName     = "splitcollect.v1.SplitService"
	PaymentServiceName   = "splitcollect.v1.PaymentService"
	ReconcileServiceName = "splitcollect.v1.ReconcileService"
	ContactServiceName   = "splitcollect.v1.ContactService"
)

// Procedure paths, relative to the server's base URL.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
	AuthServiceUpdateProfileProcedure  = "/" + AuthServiceName + "/UpdateProfile"

	SplitServicePreviewAllocationProcedure = "/" + SplitServiceName + "/PreviewAllocation"
	SplitServiceCreateSplitProcedure       = "/" + SplitServiceName + "/CreateSplit"
	SplitServiceCreateRequestProcedure     = "/" + SplitServiceName + "/CreateRequest"
	SplitServiceGetSplitProcedure          = "/" + SplitServiceName + "/GetSplit"
	SplitServiceListSplitsProcedure        = "/" + SplitServiceName + "/ListSplits"
	SplitServiceGetSummaryProcedure        = "/" + SplitServiceName + "/GetSummary"

	PaymentServiceGetCollectionProcedure  = "/" + PaymentServiceName + "/GetCollection"
	PaymentServiceDeclarePaymentProcedure = "/" + PaymentServiceName + "/DeclarePayment"
	PaymentServiceRequestCashProcedure    = "/" + PaymentServiceName + "/RequestCash"
	PaymentServiceConfirmCashProcedure    = "/" + PaymentServiceName + "/ConfirmCash"

	ReconcileServiceReconcileLedgerProcedure = "/" + ReconcileServiceName + "/ReconcileLedger"

	ContactServiceAddContactProcedure    = "/" + ContactServiceName + "/AddContact"
	ContactServiceListContactsProcedure  = "/" + ContactServiceName + "/ListContacts"
	ContactServiceUpdateContactProcedure = "/" + ContactServiceName + "/UpdateContact"
	ContactServiceDeleteContactProcedure = "/" + ContactServiceName + "/DeleteContact"
)
