package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"adviceboard/internal/cache"
	"adviceboard/internal/errors"
	"adviceboard/internal/model"
	"adviceboard/internal/policy"
	"adviceboard/internal/repository"
)

const adviceCacheTTL = 5 * time.Minute

// CreateAdviceInput carries the client-controlled fields of a new record.
// The author is always taken from the caller's identity.
type CreateAdviceInput struct {
	Type  string
	Title string
	Text  string
}

// UpdateAdviceInput is the patch allow-list for updates. Nil means "leave
// unchanged". Verified and AuthorID are deliberately not patchable.
type UpdateAdviceInput struct {
	Type  *string
	Title *string
	Text  *string
}

// AdviceService exposes the advice operations with authorization applied.
type AdviceService interface {
	Create(ctx context.Context, ident *policy.Identity, input CreateAdviceInput) (*model.Advice, error)
	List(ctx context.Context, ident *policy.Identity) ([]model.Advice, error)
	ListMine(ctx context.Context, ident *policy.Identity) ([]model.Advice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Advice, error)
	Update(ctx context.Context, ident *policy.Identity, id uuid.UUID, patch UpdateAdviceInput) (*model.Advice, error)
	Delete(ctx context.Context, ident *policy.Identity, id uuid.UUID) (*model.Advice, error)
	Verify(ctx context.Context, ident *policy.Identity, id uuid.UUID) (*model.Advice, error)
}

type adviceService struct {
	repo  repository.AdviceRepository
	cache *cache.Client
}

// NewAdviceService builds an AdviceService with repository and cache.
func NewAdviceService(repo repository.AdviceRepository, cache *cache.Client) AdviceService {
	return &adviceService{repo: repo, cache: cache}
}

func (s *adviceService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("advice:%s", id)
}

// Create validates input, forces the author to the caller and persists.
func (s *adviceService) Create(ctx context.Context, ident *policy.Identity, input CreateAdviceInput) (*model.Advice, error) {
	if !policy.CanCreate(ident) {
		return nil, errors.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Text) == "" {
		return nil, errors.ErrTitleAndTextRequired
	}

	adviceType := input.Type
	if adviceType == "" {
		adviceType = model.DefaultAdviceType
	}

	advice := &model.Advice{
		Type:     adviceType,
		Title:    input.Title,
		Text:     input.Text,
		AuthorID: ident.UserID,
	}

	if err := s.repo.Create(ctx, advice); err != nil {
		return nil, fmt.Errorf("create advice: %w", err)
	}
	return advice, nil
}

// List returns records visible to the caller: everything for admins,
// verified records only for everyone else.
func (s *adviceService) List(ctx context.Context, ident *policy.Identity) ([]model.Advice, error) {
	filter := repository.AdviceFilter{}
	if policy.ScopeForList(ident) == policy.ScopeVerifiedOnly {
		filter.VerifiedOnly = true
	}
	return s.repo.List(ctx, filter)
}

// ListMine returns the caller's own records, verified or not.
func (s *adviceService) ListMine(ctx context.Context, ident *policy.Identity) ([]model.Advice, error) {
	if ident == nil {
		return nil, errors.ErrUnauthorized
	}
	authorID := ident.UserID
	return s.repo.List(ctx, repository.AdviceFilter{AuthorID: &authorID})
}

// GetByID fetches a single record regardless of verification state.
func (s *adviceService) GetByID(ctx context.Context, id uuid.UUID) (*model.Advice, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Advice
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	advice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(advice); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, adviceCacheTTL)
	}
	return advice, nil
}

// Update applies the patch allow-list to a record the caller may modify.
// A missing record yields not-found before any ownership check.
func (s *adviceService) Update(ctx context.Context, ident *policy.Identity, id uuid.UUID, patch UpdateAdviceInput) (*model.Advice, error) {
	advice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(ident, advice.AuthorID) {
		return nil, errors.ErrForbidden
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, errors.ErrTitleAndTextRequired
		}
		advice.Title = *patch.Title
	}
	if patch.Text != nil {
		if strings.TrimSpace(*patch.Text) == "" {
			return nil, errors.ErrTitleAndTextRequired
		}
		advice.Text = *patch.Text
	}
	if patch.Type != nil {
		adviceType := *patch.Type
		if adviceType == "" {
			adviceType = model.DefaultAdviceType
		}
		advice.Type = adviceType
	}

	if err := s.repo.Save(ctx, advice); err != nil {
		return nil, fmt.Errorf("update advice: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return advice, nil
}

// Delete removes a record the caller may modify and returns it.
func (s *adviceService) Delete(ctx context.Context, ident *policy.Identity, id uuid.UUID) (*model.Advice, error) {
	advice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(ident, advice.AuthorID) {
		return nil, errors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete advice: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return advice, nil
}

// Verify marks a record as verified. Admin-only; the admin check runs
// before the record lookup, so a non-admin gets forbidden even for an
// absent id. Verifying an already-verified record is a no-op.
func (s *adviceService) Verify(ctx context.Context, ident *policy.Identity, id uuid.UUID) (*model.Advice, error) {
	if !policy.CanVerify(ident) {
		return nil, errors.ErrAdminOnly
	}

	advice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !advice.Verified {
		advice.Verified = true
		if err := s.repo.Save(ctx, advice); err != nil {
			return nil, fmt.Errorf("verify advice: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
	}
	return advice, nil
}

func (s *adviceService) load(ctx context.Context, id uuid.UUID) (*model.Advice, error) {
	advice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAdviceNotFound
		}
		return nil, fmt.Errorf("find advice: %w", err)
	}
	return advice, nil
}
