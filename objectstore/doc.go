// Package objectstore abstracts the bucket storage layer holding the
// photos. Implementations live in subpackages:
//
//   - objectstore/s3: AWS S3
//   - objectstore/minio: MinIO and other S3-compatible servers
//
// MemoryStore is an in-process implementation for tests.
package objectstore
