// Package bountypager pages through an append-only, contract-backed ledger of
// bounties, newest first, showing only bounties that are still open.
//
// Overview
//
// The ledger is an indexed array that only grows at its tail, so the newest
// bounties live at the highest indices. Engine walks that array backward in
// fixed-size batches through a BatchFetcher, drops records that were claimed
// or paid out, sorts what is left by creation time and stops as soon as the
// requested number of bounties is collected or index 0 is reached.
//
// Key concepts
//   - BatchFetcher: read-only Length/FetchRange access to the ledger. See the
//     ethledger package for a contract-backed implementation and the store
//     package for a local mirror.
//   - CursorPager: how many bounties to collect and where to start.
//   - IndexCursor: opaque resume point, the highest index not yet consumed.
//   - Feed: serialized "load more" state for UI collaborators.
//
// Eligibility is evaluated on every fetch: a bounty seen on one page may be
// gone from the next one after it is claimed or cancelled.
package bountypager
