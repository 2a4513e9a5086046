package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargodocs/internal/port"
)

// MockPageRenderer is a mock implementation of port.PageRenderer.
type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) Render(ctx context.Context, fileBytes []byte, contentType string) ([]port.PageImage, error) {
	args := m.Called(ctx, fileBytes, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.PageImage), args.Error(1)
}
