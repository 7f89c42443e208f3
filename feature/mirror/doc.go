// Package mirror implements the reconciliation engine: it unifies the file
// listings of multiple presumed-identical read roots, verifies agreement by
// content hashing, and replicates the resulting output set into one or more
// write destinations while surviving divergence instead of overwriting it.
//
// # Pipeline
//
// A run proceeds in three stages:
//
//  1. Enumerate: every read root is walked concurrently into a deterministic
//     index of non-hidden regular files (relative path -> size). Entries whose
//     name starts with a dot are pruned entirely, directories included.
//  2. Reconcile: the union of relative paths is grouped; each group either
//     resolves to one canonical variant (first configured root wins the
//     tie-break) or diverges into a read merge conflict, in which case every
//     distinct content is emitted under a deterministic conflict name.
//     Sizes are compared before digests so agreeing singletons are never
//     hashed and unequal sizes short-circuit hashing.
//  3. Write: each output item is checked against every destination. A missing
//     file is copied, a size-equal occupant is treated as already synced, and
//     a size-mismatched occupant triggers a write merge conflict: the incoming
//     copy lands under a conflict name next to the occupant, which is never
//     overwritten.
//
// # Outcome
//
// Conflicts and errors accumulate in a monotonic recorder: OK is escalated to
// Warn by any merge conflict and to Fail by any fatal I/O error, never
// downgraded. The final status maps onto the process exit contract
// (0 clean, 1 fatal, 2 conflicts).
//
// # Known limitation
//
// Existing destination files are compared by size only; a same-size,
// different-content occupant is treated as already synced. This is a
// deliberate cost/benefit trade-off, not a bug, and is covered by tests as a
// documented limitation.
package mirror
