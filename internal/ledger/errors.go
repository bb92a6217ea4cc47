package ledger

import "errors"

var (
	// ErrSlotAbsent is returned when an operation expects an allocated slot.
	ErrSlotAbsent = errors.New("slot is not allocated")

	// ErrSlotExists is returned when allocation targets an occupied address.
	ErrSlotExists = errors.New("slot is already allocated")

	// ErrWalletAbsent is returned when a wallet has never been funded.
	ErrWalletAbsent = errors.New("wallet does not exist")

	// ErrInsufficientFunds is returned when a wallet or slot balance cannot
	// cover a debit.
	ErrInsufficientFunds = errors.New("insufficient balance")
)
