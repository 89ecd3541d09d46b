package mocks

import (
	"context"

	"github.com/ridloal/lux-storefront/internal/media"
	"github.com/stretchr/testify/mock"
)

type MockMediaClient struct {
	mock.Mock
}

func (m *MockMediaClient) Upload(ctx context.Context, fileDataURI string) (*media.UploadResult, error) {
	args := m.Called(ctx, fileDataURI)
	if res := args.Get(0); res != nil {
		return res.(*media.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMediaClient) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
