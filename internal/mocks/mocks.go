// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
)

// MockTransport is a mock implementation of session.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SubmitJob(ctx context.Context, topic string) (string, error) {
	args := m.Called(ctx, topic)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResData, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobStatusResData), args.Error(1)
}

// MockDownloader is a mock implementation of service.Downloader
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, filename, dest string) (int64, error) {
	args := m.Called(ctx, filename, dest)
	return args.Get(0).(int64), args.Error(1)
}
