// Package storage provides an abstraction over the object storage that can
// back the static asset stage.
//
// It wraps the MinIO Go client, which supports both AWS S3 and self-hosted
// MinIO instances. Only the read operations the static stage needs are
// exposed; the Client interface keeps the stage testable with
// core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
//	info, err := client.StatObject(ctx, cfg.Storage.Bucket, "css/site.css", minio.StatObjectOptions{})
//	if storage.IsNotFound(err) { ... }
package storage
