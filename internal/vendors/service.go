package vendors

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
)

// MinQueryLength is the shortest query that triggers a search.
const MinQueryLength = 2

// Result is a vendor suggestion for the RFQ form.
type Result struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Website string    `json:"website"`
	Email   string    `json:"email"`
}

type Service interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

type service struct {
	repo  Repository
	limit int
}

// NewService wires vendor search; limit caps the number of suggestions.
func NewService(repo Repository, limit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("vendor search limit must be positive")
	}
	return &service{repo: repo, limit: limit}, nil
}

// Search returns no results, rather than an error, for queries under
// MinQueryLength characters.
func (s *service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []Result{}, nil
	}

	companies, err := s.repo.SearchCompanies(ctx, query, s.limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search companies")
	}
	ids := make([]uuid.UUID, len(companies))
	for i, company := range companies {
		ids[i] = company.ID
	}
	emails, err := s.repo.FirstContactEmails(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contacts")
	}

	out := make([]Result, 0, len(companies))
	for _, company := range companies {
		result := Result{ID: company.ID, Name: company.Name, Email: emails[company.ID]}
		if company.Website != nil {
			result.Website = *company.Website
		}
		out = append(out, result)
	}
	return out, nil
}
