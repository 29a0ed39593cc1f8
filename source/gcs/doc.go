// Package gcs provides a Google Cloud Storage implementation of the
// source.Store interface.
package gcs
