// Package storage wraps the MinIO client used to mirror container files.
//
// Containers can be published to and pulled from any S3 compatible bucket
// (MinIO or AWS S3). The Client interface keeps the operations the indexer
// needs so the mirror can be tested against core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	exists, err := client.BucketExists(ctx, cfg.Bucket)
//	key := cfg.ObjectKey("pakchunk0-WindowsClient.pak")
package storage
