// Package minio implements objectstore.Store for MinIO and other
// S3-compatible servers. Public URLs use the path-style convention under
// the client's endpoint.
package minio
