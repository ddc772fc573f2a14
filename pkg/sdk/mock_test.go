package nexa

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/request"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
)

type mockDiscoveryUC struct {
	discoverFn func(ctx context.Context, req *request.Discover) (page.Page, error)
}

func (m *mockDiscoveryUC) Discover(ctx context.Context, req *request.Discover) (page.Page, error) {
	return m.discoverFn(ctx, req)
}

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Search) (ranking.SearchOutcome, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Search) (ranking.SearchOutcome, error) {
	return m.searchFn(ctx, req)
}

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, req *request.Recommend) []ranking.Result
}

func (m *mockRecommendUC) Recommend(ctx context.Context, req *request.Recommend) []ranking.Result {
	return m.recommendFn(ctx, req)
}

type mockBrowseUC struct {
	browseFn func(ctx context.Context, req *request.Browse) (page.Page, error)
}

func (m *mockBrowseUC) Browse(ctx context.Context, req *request.Browse) (page.Page, error) {
	return m.browseFn(ctx, req)
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

type mockSuggester struct {
	fn func(ctx context.Context, p Prompt) ([]Suggestion, error)
}

func (m *mockSuggester) Suggest(ctx context.Context, p Prompt) ([]Suggestion, error) {
	return m.fn(ctx, p)
}
