package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Blobstore is a mock implementation of blobstore.Blobstore
type Blobstore struct {
	mock.Mock
}

func (m *Blobstore) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Blobstore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *Blobstore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Blobstore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
