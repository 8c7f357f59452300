package embedding

import (
	"context"

	"github.com/hyperjump/embedkit/internal/vector"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of Generator using testify/mock.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error) {
	args := m.Called(ctx, texts, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vector.Vector), args.Error(1)
}
