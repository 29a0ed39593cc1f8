// Package source opens haplotype input files from local disk or object storage.
//
// A Store resolves a name relative to its root (a directory, a bucket, or a
// bucket prefix) and returns a stream of the raw object. Open additionally
// decompresses the stream based on the file extension:
//
//	.gz   gzip
//	.zst  zstandard
//	.lz4  lz4 frame
//
// Remote backends live in the s3, minio and gcs subpackages.
package source
