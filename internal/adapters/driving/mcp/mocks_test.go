package mcp

import (
	"context"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

// mockContextBuilder is a mock implementation of driving.ContextBuilder.
type mockContextBuilder struct {
	result   *driving.ContextResult
	err      error
	root     string
	sections []string
}

func (m *mockContextBuilder) BuildContexts(
	_ context.Context,
	root string,
	sections []string,
) (*driving.ContextResult, error) {
	m.root = root
	m.sections = sections
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &driving.ContextResult{Contexts: map[string][]string{}}, nil
	}
	return m.result, nil
}

// mockValidator is a mock implementation of driving.ReadmeValidator.
type mockValidator struct {
	issues []domain.ValidationIssue
	req    driving.ValidationRequest
}

func (m *mockValidator) Validate(req driving.ValidationRequest) []domain.ValidationIssue {
	m.req = req
	return m.issues
}

// mockSignalCollector is a mock implementation of driving.SignalCollector.
type mockSignalCollector struct {
	signals []domain.Signal
	err     error
	root    string
}

func (m *mockSignalCollector) Collect(_ context.Context, root string) ([]domain.Signal, error) {
	m.root = root
	return m.signals, m.err
}

func (m *mockSignalCollector) CollectFromManifest(
	_ context.Context,
	_ *domain.Manifest,
) ([]domain.Signal, error) {
	return m.signals, m.err
}

// validPorts returns a Ports value with fresh mocks behind every port.
func validPorts() (*Ports, *mockContextBuilder, *mockValidator, *mockSignalCollector) {
	builder := &mockContextBuilder{}
	validator := &mockValidator{}
	collector := &mockSignalCollector{}
	ports := &Ports{
		Context:    builder,
		Validation: validator,
		Signals:    collector,
	}
	return ports, builder, validator, collector
}
