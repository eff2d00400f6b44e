package supabase

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient mirrors processed images into a Supabase Storage bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(baseURL, key, bucket string) *StorageClient {
	client := storage.NewClient(baseURL+"/storage/v1", key, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// StoragePath is the object path of a processed image inside the bucket.
func StoragePath(filename string) string {
	return "processed/" + filename
}

// UploadFile stores data under processed/{filename}, replacing any
// previous object, and returns the object path and its public URL.
func (s *StorageClient) UploadFile(filename, contentType string, data []byte) (string, string, error) {
	storagePath := StoragePath(filename)

	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}
