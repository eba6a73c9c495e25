package service

import (
	"context"
	"fmt"

	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/repository"
)

// getOrCreateAttempts bounds the read/insert retry loop under
// concurrent identical creates.
const getOrCreateAttempts = 3

// KeywordService encapsulates keyword operations. Creation is
// idempotent: a duplicate name silently collapses into the existing
// row, which is the invariant the whole keyword subsystem depends on.
type KeywordService struct {
	keywords repository.KeywordRepository
	cache    cache.Flusher
}

// NewKeywordService creates a new KeywordService.
func NewKeywordService(keywords repository.KeywordRepository, cache cache.Flusher) *KeywordService {
	return &KeywordService{keywords: keywords, cache: cache}
}

// GetOrCreate normalizes the name and returns a matching keyword,
// creating one if none exists. Under a concurrent identical create the
// conditional insert loses quietly and the next read picks up the
// winning row.
func (s *KeywordService) GetOrCreate(ctx context.Context, name string) (*domain.Keyword, error) {
	normalized := domain.NormalizeKeywordName(name)
	if normalized == "" {
		return nil, domain.NewValidationError("Keyword name must not be empty")
	}

	for attempt := 0; attempt < getOrCreateAttempts; attempt++ {
		existing, err := s.keywords.GetByName(ctx, normalized)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}

		created, err := s.keywords.Insert(ctx, normalized)
		if err != nil {
			return nil, err
		}
		if created != nil {
			s.cache.Flush()
			return created, nil
		}
		// Insert lost a race; loop back to the read.
	}
	return nil, fmt.Errorf("get or create keyword %q: retries exhausted", normalized)
}

// List returns a page of keywords, optionally filtered by name.
func (s *KeywordService) List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error) {
	if name != "" {
		name = domain.NormalizeKeywordName(name)
	}
	return s.keywords.List(ctx, name, limit, offset)
}

// GetByID returns the keyword or ErrKeywordNotFound.
func (s *KeywordService) GetByID(ctx context.Context, id int64) (*domain.Keyword, error) {
	keyword, err := s.keywords.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, domain.ErrKeywordNotFound
	}
	return keyword, nil
}

// Update renames a keyword. The new name is normalized; renaming onto
// an existing name is rejected as a duplicate.
func (s *KeywordService) Update(ctx context.Context, id int64, name string) (*domain.Keyword, error) {
	keyword, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := domain.NormalizeKeywordName(name)
	if normalized == "" {
		return nil, domain.NewValidationError("Keyword name must not be empty")
	}

	existing, err := s.keywords.GetByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != keyword.ID {
		return nil, domain.ErrDuplicateKeyword
	}

	keyword.Name = normalized
	updated, err := s.keywords.Update(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return updated, nil
}

// Delete removes a keyword. Articles keep existing; only the links go.
func (s *KeywordService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.keywords.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
