// Package s3 provides an S3 implementation of the source.Store interface.
//
// Objects are fetched with the transfer manager's concurrent ranged
// downloader into a buffer sized from a HeadObject call.
package s3
