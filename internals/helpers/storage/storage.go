// Package storage menyediakan blob storage untuk file foto rambu.
//
// Dua backend: Aliyun OSS (produksi) dan disk lokal (default / dev).
// Kontrak seragam: Store(filename, bytes) -> public URL, nama file unik
// ditentukan pemanggil, jadi tidak ada kebutuhan locking.
package storage

import "context"

type BlobStorage interface {
	Store(ctx context.Context, filename string, data []byte) (publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}

// NewFromEnv memilih backend: OSS jika kredensial lengkap, selain itu disk lokal.
func NewFromEnv(uploadDir string) (BlobStorage, error) {
	if s, err := NewOSSStorageFromEnv("uploads"); err == nil {
		return s, nil
	}
	return NewLocalStorage(uploadDir)
}
