// Package storage abstracts write destinations behind the Target interface.
//
// The reconciliation engine needs exactly two operations against a
// destination: a size/existence probe and a full-file store. Two
// implementations are provided:
//
//   - LocalTarget: a local directory tree. Copies are atomic (temp file plus
//     rename) and preserve the source modification time.
//   - ObjectTarget: an S3-compatible bucket reached through the Minio client,
//     selected by giving a write root of the form s3://bucket/prefix.
//
// Existing destination files are compared by size only; content is never
// re-hashed. This is a deliberate trade-off: it keeps re-runs against large
// destinations cheap at the cost of missing a same-size, different-content
// occupant.
package storage
