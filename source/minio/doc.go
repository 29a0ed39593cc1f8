// Package minio provides a MinIO (S3-compatible) implementation of the
// source.Store interface.
package minio
