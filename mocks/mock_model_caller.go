package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargodocs/internal/port"
)

// MockModelCaller is a mock implementation of port.ModelCaller.
type MockModelCaller struct {
	mock.Mock
}

func (m *MockModelCaller) Complete(ctx context.Context, images []port.PageImage, prompt string) (string, error) {
	args := m.Called(ctx, images, prompt)
	return args.String(0), args.Error(1)
}
