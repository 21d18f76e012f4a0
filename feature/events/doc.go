// Package events implements the deduplication-and-merge core of the archive
// pipeline.
//
// A fetched feature collection is flattened into a Table (one row per event,
// geometry canonicalized into a text column), every row is assigned a stable
// dedupe key, and the keyed batch is merged into each store target's master
// table.
//
// # Identity
//
// The dedupe key is the upstream global identifier when the layer has one;
// otherwise it is a SHA-256 hash over the row's non-volatile content. Either
// way the key is a pure function of record content, so an unchanged upstream
// row keys identically on every run and deduplicates across runs.
//
// # Merge guarantees
//
//   - Idempotence: merging the same batch twice appends zero rows the
//     second time.
//   - Append-only: master rows are never altered, removed or re-ordered.
//   - Key uniqueness: the merged table carries no duplicate keys when the
//     inputs carried none.
//
// # Persistence
//
// The master table is persisted in two forms per store target: parquet
// (authoritative, round-trips types) and CSV (human-auditable derivative).
// Each run also uploads an immutable dated snapshot of the raw fetch.
// Targets are fully independent; one target's failure never aborts another.
package events
