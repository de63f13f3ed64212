// Package mocks holds testify mocks of the datasources interfaces.
package mocks

import (
	"context"

	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRosterLoader struct {
	mock.Mock
}

// NewMockRosterLoader registers a cleanup that asserts every expectation was met.
func NewMockRosterLoader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRosterLoader {
	m := &MockRosterLoader{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRosterLoader) LoadRoster(ctx context.Context) (*domain.Roster, error) {
	args := m.Called(ctx)
	roster, _ := args.Get(0).(*domain.Roster)
	return roster, args.Error(1)
}

type MockRosterGetter struct {
	mock.Mock
}

func NewMockRosterGetter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRosterGetter {
	m := &MockRosterGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRosterGetter) Roster() *domain.Roster {
	args := m.Called()
	roster, _ := args.Get(0).(*domain.Roster)
	return roster
}
