// Package models defines the core domain models for splitcollect.
//
// # Aggregates
//
//   - Split: an expense owned by a collector and divided among participants.
//     A payment request is a Split of kind REQUEST with exactly one participant.
//   - Participant: one person's obligation within a Split. Name and phone are
//     copied at creation time, never linked to a live Contact.
//   - Contact: an entry in the collector's address book.
//   - User: a registered collector account.
//
// # Payment lifecycle
//
// A Participant starts PENDING. A digital declaration (UPI or another digital
// method with a reference) moves it to DECLARED. Asking to pay in cash moves it
// to CASH_CODE_ISSUED; confirming the code moves it to DECLARED. Reconciliation
// against a bank ledger moves a DECLARED participant to VERIFIED or MISMATCHED,
// both terminal.
//
// Duplicate ledger rows are a reconciliation outcome only and never a
// participant status.
//
// # Money
//
// Amounts are decimal.Decimal. The allocation engine works on integer minor
// units, so totals never drift through floating point.
package models
