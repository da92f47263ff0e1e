package mocks

import (
	"context"

	"config-manager/core/plugin"

	"github.com/stretchr/testify/mock"
)

// Plugin is a mock implementation of plugin.Plugin
type Plugin struct {
	mock.Mock
	KeyValue  string
	FileValue string
}

func (m *Plugin) Key() string {
	return m.KeyValue
}

func (m *Plugin) File() string {
	return m.FileValue
}

func (m *Plugin) Status(ctx context.Context, expected string) (plugin.FileStatus, error) {
	args := m.Called(ctx, expected)
	return args.Get(0).(plugin.FileStatus), args.Error(1)
}

func (m *Plugin) OnConfigChanged(ctx context.Context, expected string, alarm plugin.Alarm) error {
	args := m.Called(ctx, expected, alarm)
	if args.Error(0) == nil && alarm != nil {
		alarm.UpdateFile(m.FileValue)
	}
	return args.Error(0)
}

// Alarm is a mock implementation of plugin.Alarm
type Alarm struct {
	mock.Mock
}

func (m *Alarm) UpdateFile(file string) {
	m.Called(file)
}
