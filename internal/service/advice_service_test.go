package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"adviceboard/internal/errors"
	"adviceboard/internal/model"
	"adviceboard/internal/policy"
	"adviceboard/internal/repository"
)

// MockAdviceRepository is a mock implementation of AdviceRepository.
type MockAdviceRepository struct {
	mock.Mock
}

func (m *MockAdviceRepository) Create(ctx context.Context, advice *model.Advice) error {
	args := m.Called(ctx, advice)
	return args.Error(0)
}

func (m *MockAdviceRepository) Save(ctx context.Context, advice *model.Advice) error {
	args := m.Called(ctx, advice)
	return args.Error(0)
}

func (m *MockAdviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Advice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Advice), args.Error(1)
}

func (m *MockAdviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdviceRepository) List(ctx context.Context, filter repository.AdviceFilter) ([]model.Advice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Advice), args.Error(1)
}

func userIdentity(id uint) *policy.Identity {
	return &policy.Identity{UserID: id, Role: model.RoleUser}
}

func adminIdentity(id uint) *policy.Identity {
	return &policy.Identity{UserID: id, Role: model.RoleAdmin}
}

func TestAdviceService_Create(t *testing.T) {
	tests := []struct {
		name          string
		identity      *policy.Identity
		input         CreateAdviceInput
		setupMock     func(*MockAdviceRepository)
		expectedError error
		check         func(*testing.T, *model.Advice)
	}{
		{
			name:     "defaults applied and author forced to caller",
			identity: userIdentity(42),
			input:    CreateAdviceInput{Title: "T", Text: "X"},
			setupMock: func(m *MockAdviceRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Advice")).Return(nil)
			},
			check: func(t *testing.T, advice *model.Advice) {
				assert.Equal(t, model.DefaultAdviceType, advice.Type)
				assert.Equal(t, uint(42), advice.AuthorID)
				assert.False(t, advice.Verified)
			},
		},
		{
			name:     "explicit type preserved",
			identity: userIdentity(42),
			input:    CreateAdviceInput{Type: "Career", Title: "T", Text: "X"},
			setupMock: func(m *MockAdviceRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Advice")).Return(nil)
			},
			check: func(t *testing.T, advice *model.Advice) {
				assert.Equal(t, "Career", advice.Type)
			},
		},
		{
			name:          "empty title rejected",
			identity:      userIdentity(42),
			input:         CreateAdviceInput{Title: "  ", Text: "X"},
			setupMock:     func(m *MockAdviceRepository) {},
			expectedError: errors.ErrTitleAndTextRequired,
		},
		{
			name:          "empty text rejected",
			identity:      userIdentity(42),
			input:         CreateAdviceInput{Title: "T", Text: ""},
			setupMock:     func(m *MockAdviceRepository) {},
			expectedError: errors.ErrTitleAndTextRequired,
		},
		{
			name:          "anonymous caller rejected",
			identity:      nil,
			input:         CreateAdviceInput{Title: "T", Text: "X"},
			setupMock:     func(m *MockAdviceRepository) {},
			expectedError: errors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdviceRepository)
			tt.setupMock(mockRepo)

			svc := NewAdviceService(mockRepo, nil)
			advice, err := svc.Create(context.Background(), tt.identity, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, advice)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, advice)
				tt.check(t, advice)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdviceService_List(t *testing.T) {
	verified := model.Advice{ID: uuid.New(), Title: "seen", Verified: true}
	unverified := model.Advice{ID: uuid.New(), Title: "hidden", Verified: false}

	tests := []struct {
		name         string
		identity     *policy.Identity
		verifiedOnly bool
		result       []model.Advice
	}{
		{name: "anonymous gets verified filter", identity: nil, verifiedOnly: true, result: []model.Advice{verified}},
		{name: "regular user gets verified filter", identity: userIdentity(7), verifiedOnly: true, result: []model.Advice{verified}},
		{name: "admin gets no filter", identity: adminIdentity(1), verifiedOnly: false, result: []model.Advice{verified, unverified}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdviceRepository)
			mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.AdviceFilter) bool {
				return f.VerifiedOnly == tt.verifiedOnly && f.AuthorID == nil
			})).Return(tt.result, nil)

			svc := NewAdviceService(mockRepo, nil)
			records, err := svc.List(context.Background(), tt.identity)

			assert.NoError(t, err)
			assert.Equal(t, tt.result, records)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdviceService_ListMine(t *testing.T) {
	t.Run("anonymous caller rejected", func(t *testing.T) {
		mockRepo := new(MockAdviceRepository)
		svc := NewAdviceService(mockRepo, nil)

		records, err := svc.ListMine(context.Background(), nil)
		assert.Equal(t, errors.ErrUnauthorized, err)
		assert.Nil(t, records)
	})

	t.Run("filters by author without verified restriction", func(t *testing.T) {
		mine := []model.Advice{
			{ID: uuid.New(), AuthorID: 7, Verified: false},
			{ID: uuid.New(), AuthorID: 7, Verified: true},
		}

		mockRepo := new(MockAdviceRepository)
		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.AdviceFilter) bool {
			return !f.VerifiedOnly && f.AuthorID != nil && *f.AuthorID == 7
		})).Return(mine, nil)

		svc := NewAdviceService(mockRepo, nil)
		records, err := svc.ListMine(context.Background(), userIdentity(7))

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		mockRepo.AssertExpectations(t)
	})
}

func TestAdviceService_GetByID(t *testing.T) {
	t.Run("returns record regardless of verification", func(t *testing.T) {
		id := uuid.New()
		stored := &model.Advice{ID: id, Title: "T", Verified: false}

		mockRepo := new(MockAdviceRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)

		svc := NewAdviceService(mockRepo, nil)
		advice, err := svc.GetByID(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, stored, advice)
	})

	t.Run("missing record maps to not found", func(t *testing.T) {
		id := uuid.New()

		mockRepo := new(MockAdviceRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAdviceService(mockRepo, nil)
		advice, err := svc.GetByID(context.Background(), id)

		assert.Equal(t, errors.ErrAdviceNotFound, err)
		assert.Nil(t, advice)
	})
}

func TestAdviceService_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name          string
		identity      *policy.Identity
		patch         UpdateAdviceInput
		stored        *model.Advice
		storedErr     error
		expectSave    bool
		expectedError error
		check         func(*testing.T, *model.Advice)
	}{
		{
			name:          "missing record takes precedence over ownership",
			identity:      userIdentity(7),
			patch:         UpdateAdviceInput{Title: strPtr("new")},
			storedErr:     gorm.ErrRecordNotFound,
			expectedError: errors.ErrAdviceNotFound,
		},
		{
			name:          "non-author non-admin forbidden",
			identity:      userIdentity(7),
			patch:         UpdateAdviceInput{Title: strPtr("new")},
			stored:        &model.Advice{AuthorID: 42, Title: "old", Text: "body"},
			expectedError: errors.ErrForbidden,
		},
		{
			name:       "author updates own record",
			identity:   userIdentity(42),
			patch:      UpdateAdviceInput{Title: strPtr("new title"), Text: strPtr("new text")},
			stored:     &model.Advice{AuthorID: 42, Title: "old", Text: "body", Type: "Other"},
			expectSave: true,
			check: func(t *testing.T, advice *model.Advice) {
				assert.Equal(t, "new title", advice.Title)
				assert.Equal(t, "new text", advice.Text)
				assert.Equal(t, "Other", advice.Type)
			},
		},
		{
			name:       "admin updates another author's record",
			identity:   adminIdentity(1),
			patch:      UpdateAdviceInput{Type: strPtr("Career")},
			stored:     &model.Advice{AuthorID: 42, Title: "old", Text: "body", Type: "Other"},
			expectSave: true,
			check: func(t *testing.T, advice *model.Advice) {
				assert.Equal(t, "Career", advice.Type)
			},
		},
		{
			name:       "verified and author survive an update untouched",
			identity:   userIdentity(42),
			patch:      UpdateAdviceInput{Title: strPtr("new")},
			stored:     &model.Advice{AuthorID: 42, Title: "old", Text: "body", Verified: true},
			expectSave: true,
			check: func(t *testing.T, advice *model.Advice) {
				assert.True(t, advice.Verified)
				assert.Equal(t, uint(42), advice.AuthorID)
			},
		},
		{
			name:          "empty title patch rejected",
			identity:      userIdentity(42),
			patch:         UpdateAdviceInput{Title: strPtr("   ")},
			stored:        &model.Advice{AuthorID: 42, Title: "old", Text: "body"},
			expectedError: errors.ErrTitleAndTextRequired,
		},
		{
			name:          "empty text patch rejected",
			identity:      userIdentity(42),
			patch:         UpdateAdviceInput{Text: strPtr("")},
			stored:        &model.Advice{AuthorID: 42, Title: "old", Text: "body"},
			expectedError: errors.ErrTitleAndTextRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			mockRepo := new(MockAdviceRepository)
			if tt.storedErr != nil {
				mockRepo.On("FindByID", mock.Anything, id).Return(nil, tt.storedErr)
			} else {
				stored := *tt.stored
				stored.ID = id
				mockRepo.On("FindByID", mock.Anything, id).Return(&stored, nil)
			}
			if tt.expectSave {
				mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Advice")).Return(nil)
			}

			svc := NewAdviceService(mockRepo, nil)
			advice, err := svc.Update(context.Background(), tt.identity, id, tt.patch)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, advice)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, advice)
				tt.check(t, advice)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdviceService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		identity      *policy.Identity
		stored        *model.Advice
		storedErr     error
		expectDelete  bool
		expectedError error
	}{
		{
			name:          "missing record yields not found",
			identity:      userIdentity(7),
			storedErr:     gorm.ErrRecordNotFound,
			expectedError: errors.ErrAdviceNotFound,
		},
		{
			name:          "non-author non-admin forbidden",
			identity:      userIdentity(7),
			stored:        &model.Advice{AuthorID: 42},
			expectedError: errors.ErrForbidden,
		},
		{
			name:         "author deletes own record",
			identity:     userIdentity(42),
			stored:       &model.Advice{AuthorID: 42, Title: "T"},
			expectDelete: true,
		},
		{
			name:         "admin deletes any record",
			identity:     adminIdentity(1),
			stored:       &model.Advice{AuthorID: 42, Title: "T"},
			expectDelete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			mockRepo := new(MockAdviceRepository)
			if tt.storedErr != nil {
				mockRepo.On("FindByID", mock.Anything, id).Return(nil, tt.storedErr)
			} else {
				stored := *tt.stored
				stored.ID = id
				mockRepo.On("FindByID", mock.Anything, id).Return(&stored, nil)
			}
			if tt.expectDelete {
				mockRepo.On("Delete", mock.Anything, id).Return(nil)
			}

			svc := NewAdviceService(mockRepo, nil)
			advice, err := svc.Delete(context.Background(), tt.identity, id)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, advice)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, advice)
				assert.Equal(t, id, advice.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdviceService_Verify(t *testing.T) {
	t.Run("non-admin forbidden before lookup", func(t *testing.T) {
		mockRepo := new(MockAdviceRepository)

		svc := NewAdviceService(mockRepo, nil)
		advice, err := svc.Verify(context.Background(), userIdentity(42), uuid.New())

		assert.Equal(t, errors.ErrAdminOnly, err)
		assert.Nil(t, advice)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("anonymous forbidden", func(t *testing.T) {
		mockRepo := new(MockAdviceRepository)

		svc := NewAdviceService(mockRepo, nil)
		_, err := svc.Verify(context.Background(), nil, uuid.New())

		assert.Equal(t, errors.ErrAdminOnly, err)
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(MockAdviceRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAdviceService(mockRepo, nil)
		_, err := svc.Verify(context.Background(), adminIdentity(1), id)

		assert.Equal(t, errors.ErrAdviceNotFound, err)
	})

	t.Run("admin verifies and the record becomes visible", func(t *testing.T) {
		id := uuid.New()
		stored := &model.Advice{ID: id, AuthorID: 42, Title: "T", Verified: false}

		mockRepo := new(MockAdviceRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(a *model.Advice) bool {
			return a.Verified
		})).Return(nil)

		svc := NewAdviceService(mockRepo, nil)
		advice, err := svc.Verify(context.Background(), adminIdentity(1), id)

		assert.NoError(t, err)
		assert.True(t, advice.Verified)

		// Once verified, non-admin listing includes the record.
		mockRepo.On("List", mock.Anything, repository.AdviceFilter{VerifiedOnly: true}).
			Return([]model.Advice{*advice}, nil)
		records, err := svc.List(context.Background(), userIdentity(7))
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, id, records[0].ID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("verify is idempotent", func(t *testing.T) {
		id := uuid.New()
		stored := &model.Advice{ID: id, AuthorID: 42, Title: "T", Verified: true}

		mockRepo := new(MockAdviceRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)

		svc := NewAdviceService(mockRepo, nil)
		advice, err := svc.Verify(context.Background(), adminIdentity(1), id)

		assert.NoError(t, err)
		assert.True(t, advice.Verified)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
