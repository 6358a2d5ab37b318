// Package storage abstracts where uploaded post images live. The "local"
// disk writes under a directory on the server; the "s3" disk targets any
// S3-compatible bucket (AWS, MinIO, R2, Spaces). Connect picks the default
// disk from configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Disk stores and serves files under slash-separated paths.
type Disk interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk is added when a bucket is configured. Call once at startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	disks["local"] = newLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	defaultDisk = config.StorageDefault()
	if _, ok := disks[defaultDisk]; !ok {
		defaultDisk = "local"
	}
}

// RegisterDisk adds (or replaces) a named disk and makes it the default when
// none is set. Tests register in-memory disks through this.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	defer mu.Unlock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

func current() (Disk, error) {
	mu.RLock()
	name := defaultDisk
	mu.RUnlock()
	return Use(name)
}

// Put writes r to path on the default disk.
func Put(ctx context.Context, path string, r io.Reader) error {
	d, err := current()
	if err != nil {
		return err
	}
	return d.Put(ctx, path, r)
}

// URL returns the public URL for path on the default disk.
func URL(path string) string {
	d, err := current()
	if err != nil {
		return path
	}
	return d.URL(path)
}

// Delete removes path from the default disk.
func Delete(ctx context.Context, path string) error {
	d, err := current()
	if err != nil {
		return err
	}
	return d.Delete(ctx, path)
}
