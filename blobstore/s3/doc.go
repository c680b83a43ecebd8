// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Sequence blobs are read with ranged GETs, so a scan over a remote genome
// only transfers the bytes it touches. Snapshot writes stream through a
// multipart upload and become visible atomically on Close.
//
// CommitStore layers DynamoDB conditional writes on top of the S3 store to
// give the "CURRENT" snapshot pointer compare-and-swap semantics, which S3
// alone cannot provide; concurrent publishers fail cleanly with
// ErrConcurrentModification instead of silently overwriting each other.
package s3
