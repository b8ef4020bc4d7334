// Package objstore puts and deletes blobs in S3 compatible object storage
package objstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	perr "airwatch/internal/platform/errors"
)

// Store is the object storage seam used by services
type Store interface {
	// Put uploads body under key and returns its public URL
	Put(ctx context.Context, key string, body []byte, contentType string, meta map[string]string) (string, error)
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key without touching the network
	URL(key string) string
}

// Object is a stored blob as seen by Memory
type Object struct {
	Body        []byte
	ContentType string
	Meta        map[string]string
}

// Memory is an in-process Store for tests and local runs
type Memory struct {
	mu      sync.Mutex
	base    string
	objects map[string]Object

	// FailPut and FailDelete force errors from the matching call
	FailPut    error
	FailDelete error
}

// NewMemory returns an empty Memory store whose URLs start with base
func NewMemory(base string) *Memory {
	return &Memory{base: strings.TrimRight(base, "/"), objects: map[string]Object{}}
}

// Put implements Store
func (m *Memory) Put(_ context.Context, key string, body []byte, contentType string, meta map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return "", perr.Upstreamf(m.FailPut, "failed to upload file to storage")
	}
	cp := make(map[string]string, len(meta))
	for k, v := range meta {
		cp[k] = v
	}
	m.objects[key] = Object{Body: append([]byte(nil), body...), ContentType: contentType, Meta: cp}
	return m.URL(key), nil
}

// Delete implements Store
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete != nil {
		return perr.Upstreamf(m.FailDelete, "failed to delete file from storage")
	}
	delete(m.objects, key)
	return nil
}

// URL implements Store
func (m *Memory) URL(key string) string { return m.base + "/" + key }

// Get returns a stored object
func (m *Memory) Get(key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	return o, ok
}

// Keys lists stored keys in order
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
