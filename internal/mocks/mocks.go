// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/federalregister"
)

// RegistryClient is a mock for policy.RegistryClient.
type RegistryClient struct {
	mock.Mock
}

func (m *RegistryClient) Search(ctx context.Context, query string, limit int) []federalregister.DocumentRecord {
	args := m.Called(ctx, query, limit)
	if docs, ok := args.Get(0).([]federalregister.DocumentRecord); ok {
		return docs
	}
	return nil
}

func (m *RegistryClient) CheckStatus(ctx context.Context, policyID string) federalregister.StatusRecord {
	args := m.Called(ctx, policyID)
	return args.Get(0).(federalregister.StatusRecord)
}

// CaseLawClient is a mock for policy.CaseLawClient.
type CaseLawClient struct {
	mock.Mock
}

func (m *CaseLawClient) CasesForPolicy(ctx context.Context, policyName string) []courtlistener.CaseRecord {
	args := m.Called(ctx, policyName)
	if cases, ok := args.Get(0).([]courtlistener.CaseRecord); ok {
		return cases
	}
	return nil
}

// Fetcher is a mock for document.Fetcher.
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (document.Page, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(document.Page), args.Error(1)
}
