package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are decimal strings on the wire, e.g. "33.34".

// User is a collector account. PayeeVPA and PayeeName are the default
// payee of new splits and requests.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PayeeVPA    string    `json:"payeeVpa,omitempty"`
	PayeeName   string    `json:"payeeName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// UpdateProfileRequest replaces the caller's display name and UPI profile.
// An empty PayeeVPA clears the profile.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PayeeVPA    string `json:"payeeVpa,omitempty"`
	PayeeName   string `json:"payeeName,omitempty"`
}

type UpdateProfileResponse struct {
	User User `json:"user"`
}

// ParticipantInput names one person in a new split. When ContactID is set,
// Name and Phone are copied from the collector's contact.
type ParticipantInput struct {
	ContactID string          `json:"contactId,omitempty"`
	Name      string          `json:"name,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Share is one computed participant amount.
type Share struct {
	Name   string          `json:"name"`
	Phone  string          `json:"phone,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type PreviewAllocationRequest struct {
	Mode         string             `json:"mode"`
	Total        decimal.Decimal    `json:"total"`
	Participants []ParticipantInput `json:"participants"`
}

type PreviewAllocationResponse struct {
	Shares     []Share         `json:"shares"`
	OwnerShare decimal.Decimal `json:"ownerShare"`
}

type CreateSplitRequest struct {
	Mode         string             `json:"mode"`
	Total        decimal.Decimal    `json:"total"`
	Purpose      string             `json:"purpose"`
	PayeeVPA     string             `json:"payeeVpa,omitempty"`
	PayeeName    string             `json:"payeeName,omitempty"`
	Participants []ParticipantInput `json:"participants"`
}

type CreateSplitResponse struct {
	Split Split `json:"split"`
}

type CreateRequestRequest struct {
	ContactID string          `json:"contactId,omitempty"`
	Name      string          `json:"name,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	PayeeVPA  string          `json:"payeeVpa"`
	PayeeName string          `json:"payeeName"`
}

type CreateRequestResponse struct {
	Split Split `json:"split"`
}

type GetSplitRequest struct {
	SplitID string `json:"splitId"`
}

type GetSplitResponse struct {
	Split Split `json:"split"`
}

type ListSplitsRequest struct{}

type ListSplitsResponse struct {
	Splits []Split `json:"splits"`
}

type GetSummaryRequest struct{}

// PersonDue is what one person still owes across all splits.
type PersonDue struct {
	Name   string          `json:"name"`
	Phone  string          `json:"phone,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Splits int             `json:"splits"`
}

type GetSummaryResponse struct {
	Pending    decimal.Decimal `json:"pending"`
	Declared   decimal.Decimal `json:"declared"`
	Verified   decimal.Decimal `json:"verified"`
	Mismatched decimal.Decimal `json:"mismatched"`
	OwnShare   decimal.Decimal `json:"ownShare"`
	Dues       []PersonDue     `json:"dues"`
}

// StatusCounts tallies a split's participants by status.
type StatusCounts struct {
	Pending        int `json:"pending"`
	CashCodeIssued int `json:"cashCodeIssued"`
	Declared       int `json:"declared"`
	Verified       int `json:"verified"`
	Mismatched     int `json:"mismatched"`
}

// Split is the collector's view of a split or payment request.
type Split struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Purpose      string          `json:"purpose"`
	Total        decimal.Decimal `json:"total"`
	Mode         string          `json:"mode"`
	OwnerShare   decimal.Decimal `json:"ownerShare"`
	PayeeVPA     string          `json:"payeeVpa,omitempty"`
	PayeeName    string          `json:"payeeName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	Participants []Participant   `json:"participants"`
	Counts       StatusCounts    `json:"counts"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Settled      bool            `json:"settled"`
}

// Participant is the collector's view of one participant. CashCode is only
// ever filled in here, never in a Collection.
type Participant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CashCode    string          `json:"cashCode,omitempty"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	CollectURL  string          `json:"collectUrl"`
	WhatsAppURL string          `json:"whatsappUrl"`
}

// Collection is what a participant sees when opening their link.
type Collection struct {
	ParticipantID string            `json:"participantId"`
	Name          string            `json:"name"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        string            `json:"status"`
	Method        string            `json:"method,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	PaidAt        *time.Time        `json:"paidAt,omitempty"`
	Kind          string            `json:"kind"`
	Purpose       string            `json:"purpose"`
	CollectorName string            `json:"collectorName,omitempty"`
	PayeeVPA      string            `json:"payeeVpa,omitempty"`
	PayeeName     string            `json:"payeeName,omitempty"`
	UPILinks      map[string]string `json:"upiLinks,omitempty"`
}

type GetCollectionRequest struct {
	ParticipantID string `json:"participantId"`
}

type GetCollectionResponse struct {
	Collection Collection `json:"collection"`
}

type DeclarePaymentRequest struct {
	ParticipantID string `json:"participantId"`
	Method        string `json:"method"`
	Reference     string `json:"reference"`
}

type DeclarePaymentResponse struct {
	Collection Collection `json:"collection"`
}

type RequestCashRequest struct {
	ParticipantID string `json:"participantId"`
}

type RequestCashResponse struct {
	Collection Collection `json:"collection"`
}

type ConfirmCashRequest struct {
	ParticipantID string `json:"participantId"`
	Code          string `json:"code"`
}

type ConfirmCashResponse struct {
	Collection Collection `json:"collection"`
}

// LedgerRow is one bank transaction supplied directly instead of as CSV.
type LedgerRow struct {
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date,omitempty"`
}

// ReconcileLedgerRequest carries either CSV text (header row, then
// reference,amount,date) or explicit rows. CSV rows come first when both are set.
type ReconcileLedgerRequest struct {
	CSV  string      `json:"csv,omitempty"`
	Rows []LedgerRow `json:"rows,omitempty"`
}

// RowResult is the outcome of one ledger row: MATCHED, MISMATCHED,
// DUPLICATE, REJECTED or UNKNOWN.
type RowResult struct {
	Reference     string `json:"reference"`
	Outcome       string `json:"outcome"`
	ParticipantID string `json:"participantId,omitempty"`
}

type ReconcileLedgerResponse struct {
	Matched    int         `json:"matched"`
	Failed     int         `json:"failed"`
	Duplicates int         `json:"duplicates"`
	Rows       []RowResult `json:"rows"`
}

// Contact is an address book entry.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type AddContactResponse struct {
	Contact Contact `json:"contact"`
}

type ListContactsRequest struct{}

type ListContactsResponse struct {
	Contacts []Contact `json:"contacts"`
}

type UpdateContactRequest struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
}

type UpdateContactResponse struct {
	Contact Contact `json:"contact"`
}

type DeleteContactRequest struct {
	ContactID string `json:"contactId"`
}

type DeleteContactResponse struct{}
