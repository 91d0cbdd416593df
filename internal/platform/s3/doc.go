// Package s3 archives exported cluster blueprints to S3-compatible object
// storage before a cluster is deleted.
//
// Objects are written as <cluster>/<UTC timestamp>-blueprint.json. The
// bucket is created on first use.
package s3
