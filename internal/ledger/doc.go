// Package ledger provides SQLite-backed durable storage for curve slots and
// the wallets that fund them.
//
// A slot is a fixed-size keyed byte buffer with an attached balance; it is
// allocated by debiting a funder wallet with the rent for its size, and
// releasing it returns its whole residual balance to a recipient wallet.
// The package knows nothing about what the bytes mean - interpreting them is
// the processor's job.
//
// # Critical patterns
//
// Atomic transitions: every mutating instruction runs inside Atomic, which
// wraps a single SQLite transaction. Either every check passes and the full
// effect commits, or the transaction rolls back and nothing is observable.
//
// Deterministic enumeration: ListSlots always orders by address bytes, so
// bulk reads are reproducible across runs.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package ledger
