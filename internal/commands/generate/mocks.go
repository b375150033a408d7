package generate

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matelog/internal/models"
	"github.com/thomas-vilte/matelog/internal/render"
	"github.com/thomas-vilte/matelog/internal/services"
)

type MockChangelogService struct {
	mock.Mock
}

func (m *MockChangelogService) Build(ctx context.Context, req services.GenerateRequest) (*models.Changelog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Changelog), args.Error(1)
}

func (m *MockChangelogService) Render(ctx context.Context, cl *models.Changelog, format render.Format) (string, error) {
	args := m.Called(ctx, cl, format)
	return args.String(0), args.Error(1)
}

func (m *MockChangelogService) Write(ctx context.Context, path, content string, prepend bool) error {
	args := m.Called(ctx, path, content, prepend)
	return args.Error(0)
}
