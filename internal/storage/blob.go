package storage

import "io"

// ObjectInfo describes one stored blob.
type ObjectInfo struct {
	Key  string
	Size int64
}

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
	List(prefix string) ([]ObjectInfo, error)
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
}
