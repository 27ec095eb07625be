// Package contestengine implements the Contest Escrow Engine inside the
// contest-core context.
//
// The module owns the contest/entry/vote lifecycle state machine and its
// fund accounting: creation, cancellation, natural ending and batch sweep of
// contests, the per-contest entry ledger with its three-part fee split,
// per-entry vote dedup, and winner/profit settlement against the escrow
// treasury. Business rules live in application/domain layers; infrastructure
// sits behind ports and adapters.
package contestengine
