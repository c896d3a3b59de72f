package adapter

import (
	"context"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// Storage is the interface for the article body archive. Full bodies are
// mirrored to object storage so Firestore documents stay small.
type Storage interface {
	// Put returns a writer to archive an article body
	Put(ctx context.Context, key string) (io.WriteCloser, error)
	// Get loads an archived article body
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// ArticleKey builds the archive object key for a user's article
func ArticleKey(userID, requestID string) string {
	return path.Join("users", userID, "articles", requestID+".md")
}

// storageClient implements Storage interface using Cloud Storage
type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage client
func NewStorage(ctx context.Context, bucketName string) (Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	return obj.NewWriter(ctx), nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read archived article", goerr.V("key", key))
	}

	return reader, nil
}
