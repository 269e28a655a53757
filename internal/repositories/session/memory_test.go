package session

import (
	"context"
	"testing"
	"time"

	"github.com/pointdeck/pointdeck/internal/models"

	clockMocks "github.com/pointdeck/pointdeck/internal/common/clock/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	repo      Repository
	ctx       context.Context
	testNow   time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	repo, err := NewMemory(&Config{Clock: s.mockClock})
	s.Require().NoError(err)
	s.repo = repo
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) TestNewMemoryValidatesConfig() {
	_, err := NewMemory(nil)
	s.Error(err)

	_, err = NewMemory(&Config{})
	s.Error(err)
}

func (s *MemoryRepositoryTestSuite) TestGetOrCreateIsIdempotent() {
	first := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})
	second := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})

	s.Same(first, second)
	s.Equal("alpha", first.Code)
	s.Empty(first.Users)
	s.Empty(first.Tickets)
	s.False(first.VotingRevealed)
	s.Equal(s.testNow, first.CreatedAt)
}

func (s *MemoryRepositoryTestSuite) TestGetMissesUnknownCode() {
	_, ok := s.repo.Get(s.ctx, &GetInput{Code: "missing"})
	s.False(ok)
}

func (s *MemoryRepositoryTestSuite) TestRemoveIfEmptyDeletesEmptySession() {
	sess := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})

	removed := s.repo.RemoveIfEmpty(s.ctx, &RemoveIfEmptyInput{Code: "alpha"})
	s.True(removed)

	_, ok := s.repo.Get(s.ctx, &GetInput{Code: "alpha"})
	s.False(ok)

	// A holder of the pre-deletion pointer can tell it went stale
	s.True(sess.Removed)
}

func (s *MemoryRepositoryTestSuite) TestRemoveIfEmptyKeepsPopulatedSession() {
	sess := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})
	sess.Users = append(sess.Users, &models.User{ID: "u1", Name: "Ada", Role: models.RolePlayer})

	removed := s.repo.RemoveIfEmpty(s.ctx, &RemoveIfEmptyInput{Code: "alpha"})
	s.False(removed)

	_, ok := s.repo.Get(s.ctx, &GetInput{Code: "alpha"})
	s.True(ok)
}

func (s *MemoryRepositoryTestSuite) TestRemoveIfEmptyUnknownCodeIsNoOp() {
	s.False(s.repo.RemoveIfEmpty(s.ctx, &RemoveIfEmptyInput{Code: "missing"}))
}

func (s *MemoryRepositoryTestSuite) TestRecreateAfterRemoveStartsFresh() {
	first := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})
	first.Tickets = append(first.Tickets, &models.Ticket{ID: "t1", Title: "Login page", Votes: map[string]int{}})

	s.repo.RemoveIfEmpty(s.ctx, &RemoveIfEmptyInput{Code: "alpha"})

	recreated := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "alpha"})
	s.NotSame(first, recreated)
	s.Empty(recreated.Tickets)
}

func (s *MemoryRepositoryTestSuite) TestPurgeEmptyRemovesOnlyEmptySessions() {
	s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "empty-1"})
	s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "empty-2"})
	populated := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "busy"})
	populated.Users = append(populated.Users, &models.User{ID: "u1", Name: "Ada", Role: models.RoleObserver})

	s.Equal(2, s.repo.PurgeEmpty(s.ctx, &PurgeEmptyInput{}))

	_, ok := s.repo.Get(s.ctx, &GetInput{Code: "busy"})
	s.True(ok)
	_, ok = s.repo.Get(s.ctx, &GetInput{Code: "empty-1"})
	s.False(ok)
}

func (s *MemoryRepositoryTestSuite) TestPurgeEmptySparesYoungSessions() {
	young := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "young"})
	old := s.repo.GetOrCreate(s.ctx, &GetOrCreateInput{Code: "old"})
	old.CreatedAt = s.testNow.Add(-2 * time.Hour)

	s.Equal(1, s.repo.PurgeEmpty(s.ctx, &PurgeEmptyInput{OlderThan: time.Hour}))

	_, ok := s.repo.Get(s.ctx, &GetInput{Code: "young"})
	s.True(ok)
	s.False(young.Removed)
	_, ok = s.repo.Get(s.ctx, &GetInput{Code: "old"})
	s.False(ok)
}
