// Package s3 implements objectstore.Store for AWS S3.
//
// Object bytes are fetched through the feature/s3/manager download
// manager; user metadata comes from HeadObject. Public URLs follow the
// virtual-hosted-style convention.
package s3
