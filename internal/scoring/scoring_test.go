package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ScoringTestSuite struct {
	suite.Suite
}

func TestScoringTestSuite(t *testing.T) {
	suite.Run(t, new(ScoringTestSuite))
}

func votesOf(points ...int) []Vote {
	votes := make([]Vote, 0, len(points))
	for i, p := range points {
		votes = append(votes, Vote{UserID: string(rune('a' + i)), Points: p})
	}
	return votes
}

func (s *ScoringTestSuite) TestAnalyzeConsensus() {
	analysis := Analyze(votesOf(5, 5, 5))

	s.True(analysis.Consensus)
	s.Require().NotNil(analysis.Mode)
	s.Equal(5, *analysis.Mode)
	s.Equal(5.0, analysis.Median)
	s.Equal(5, analysis.RecommendedPoint)
	s.Len(analysis.Distribution[5], 3)
}

func (s *ScoringTestSuite) TestAnalyzeMajorityMode() {
	// Mode 1 holds 3 of 4 votes, a strict majority
	analysis := Analyze(votesOf(1, 1, 1, 8))

	s.False(analysis.Consensus)
	s.Require().NotNil(analysis.Mode)
	s.Equal(1, *analysis.Mode)
	s.Equal(1, analysis.RecommendedPoint)
}

func (s *ScoringTestSuite) TestAnalyzeFallsBackToMedian() {
	// Mode 2 holds only 2 of 4 votes, so the median path decides
	analysis := Analyze(votesOf(1, 2, 2, 3))

	s.False(analysis.Consensus)
	s.Require().NotNil(analysis.Mode)
	s.Equal(2, *analysis.Mode)
	s.Equal(2.0, analysis.Median)
	s.Equal(2, analysis.RecommendedPoint)
}

func (s *ScoringTestSuite) TestAnalyzeModeTieTakesSmallestValue() {
	analysis := Analyze(votesOf(1, 1, 2, 2))

	s.Require().NotNil(analysis.Mode)
	s.Equal(1, *analysis.Mode)
}

func (s *ScoringTestSuite) TestAnalyzeMedianTieTakesLowerScalePoint() {
	// Median is 4, equidistant from 3 and 5
	analysis := Analyze(votesOf(3, 5))

	s.Equal(4.0, analysis.Median)
	s.Equal(3, analysis.RecommendedPoint)
}

func (s *ScoringTestSuite) TestAnalyzeOddCountMedian() {
	analysis := Analyze(votesOf(1, 3, 13))

	s.Equal(3.0, analysis.Median)
	s.Equal(3, analysis.RecommendedPoint)
}

func (s *ScoringTestSuite) TestAnalyzeEmpty() {
	analysis := Analyze(nil)

	s.False(analysis.Consensus)
	s.Nil(analysis.Mode)
	s.Equal(0.0, analysis.Median)
	s.Equal(0, analysis.RecommendedPoint)
	s.Empty(analysis.Distribution)
}

func (s *ScoringTestSuite) TestAnalyzeDistributionGroupsVoters() {
	analysis := Analyze([]Vote{
		{UserID: "u1", Points: 3},
		{UserID: "u2", Points: 3},
		{UserID: "u3", Points: 8},
	})

	s.ElementsMatch([]string{"u1", "u2"}, analysis.Distribution[3])
	s.ElementsMatch([]string{"u3"}, analysis.Distribution[8])
}

func (s *ScoringTestSuite) TestAverageRoundsToOneDecimal() {
	s.Equal(2.7, Average([]int{1, 2, 5}))
	s.Equal(5.0, Average([]int{5}))
	s.Equal(0.0, Average(nil))
}

func (s *ScoringTestSuite) TestValidPoint() {
	for _, p := range Scale {
		s.True(ValidPoint(p))
	}
	s.False(ValidPoint(0))
	s.False(ValidPoint(4))
	s.False(ValidPoint(21))
	s.False(ValidPoint(-1))
}
