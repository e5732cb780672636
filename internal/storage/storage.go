package storage

import "context"

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations used to archive exports.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error)
}

type noopStorage struct{}

// NewNoopStorage returns a storage that accepts and discards uploads.
func NewNoopStorage() ObjectStorage {
	return noopStorage{}
}

func (noopStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error) {
	return ObjectInfo{Key: key, Size: int64(len(data))}, nil
}
