package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"maps"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
)

type memoryObject struct {
	data []byte
	info ObjectInfo
}

// Memory keeps objects in process memory. It is meant for local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	clock   clock.Clocker
	objects map[string]memoryObject
}

// NewMemory creates an empty in-memory store. A nil clock uses the wall clock.
func NewMemory(clk clock.Clocker) *Memory {
	if clk == nil {
		clk = clock.New()
	}

	return &Memory{
		clock:   clk,
		objects: make(map[string]memoryObject),
	}
}

func (m *Memory) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if err := validateLocation(bucket, key); err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, err
	}

	sum := md5.Sum(data)
	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ETag:        hex.EncodeToString(sum[:]),
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
		UpdatedAt:   m.clock.Now(),
	}

	m.mu.Lock()
	m.objects[bucket+"/"+key] = memoryObject{data: data, info: info}
	m.mu.Unlock()

	return info, nil
}

func (m *Memory) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := validateLocation(bucket, key); err != nil {
		return nil, ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	m.mu.RLock()
	obj, ok := m.objects[bucket+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *Memory) DeleteObject(_ context.Context, bucket, key string) error {
	if err := validateLocation(bucket, key); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.objects, bucket+"/"+key)
	m.mu.Unlock()

	return nil
}

// PresignGet returns a memory:// URL carrying the expiry as a unix timestamp.
func (m *Memory) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if err := validateLocation(bucket, key); err != nil {
		return "", err
	}

	m.mu.RLock()
	_, ok := m.objects[bucket+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}

	u := url.URL{
		Scheme:   "memory",
		Host:     bucket,
		Path:     "/" + key,
		RawQuery: url.Values{"expires": {strconv.FormatInt(m.clock.Now().Add(expiry).Unix(), 10)}}.Encode(),
	}

	return u.String(), nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	clear(m.objects)
	m.mu.Unlock()

	return nil
}
