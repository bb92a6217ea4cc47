// Package processor implements the instruction-level state machine over
// curve slots: create, alter, and delete, plus unauthorized reads.
//
// Each slot is either Absent or holds one curve record. Mutations are
// authorized by the signer set the host attaches to the request and applied
// inside a single ledger transaction, so every transition is atomic: either
// all checks pass and the full effect commits, or a specific error comes
// back and nothing changed.
//
// Processing is synchronous and stateless; each request is fully determined
// by its inputs and the current slot contents. Validation always precedes
// mutation.
package processor
