package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Runner is a mock implementation of command.Runner
type Runner struct {
	mock.Mock
}

func (m *Runner) Run(ctx context.Context, command string) ([]byte, error) {
	args := m.Called(ctx, command)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *Runner) RunArgs(ctx context.Context, name string, argv ...string) ([]byte, error) {
	args := m.Called(ctx, name, argv)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}
