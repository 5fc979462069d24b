package archive

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	obj  Object
	data []byte
}

// Memory keeps exports in process memory. Files are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	objs    map[string]memoryEntry
	baseURL string
}

// NewMemory returns an empty store whose URLs are baseURL + key.
func NewMemory(baseURL string) *Memory {
	return &Memory{objs: make(map[string]memoryEntry), baseURL: baseURL}
}

func (s *Memory) Driver() string { return DriverMemory }

func (s *Memory) Put(_ context.Context, key string, r io.Reader, contentType string) (Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objs[key]; exists {
		return Object{}, ErrExists
	}
	obj := Object{Key: key, Size: int64(len(b)), ContentType: contentType, LastModified: time.Now().UTC()}
	s.objs[key] = memoryEntry{obj: obj, data: b}
	return obj, nil
}

func (s *Memory) Get(_ context.Context, key string) (Object, io.ReadCloser, error) {
	s.mu.RLock()
	entry, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return Object{}, nil, ErrNotFound
	}
	return entry.obj, io.NopCloser(bytes.NewReader(entry.data)), nil
}

func (s *Memory) List(_ context.Context, prefix string) ([]Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Object{}
	for k, e := range s.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, e.obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// URL points at the API download route; expiry is not enforced.
func (s *Memory) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	return s.baseURL + (&url.URL{Path: key}).EscapedPath(), nil
}
