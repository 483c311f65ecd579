package cortex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hebbgraph/hebbgraph/cortex"
)

// ScenarioSuite exercises the literal end-to-end scenarios: training a
// fresh Engine on a repeated sequence, then checking the emissions and
// invariants it produces against the expected shape.
type ScenarioSuite struct {
	suite.Suite
	e *cortex.Engine
}

func (s *ScenarioSuite) SetupTest() {
	s.e = cortex.Create()
}

func (s *ScenarioSuite) train(n int, seqs ...string) {
	require := require.New(s.T())
	for i := 0; i < n; i++ {
		for _, seq := range seqs {
			_, err := s.e.ProcessInput(0, []byte(seq))
			require.NoError(err)
		}
	}
}

// Scenario 1: "ab" x5, then "a" emits "b"; nodes + one level-1 hierarchy.
func (s *ScenarioSuite) TestScenario1_RepeatedAB() {
	require := require.New(s.T())

	s.train(5, "ab")

	stats := s.e.Stats()
	require.GreaterOrEqual(stats.NodeCount, 3, "a, b, STOP at minimum")
	total := 0
	for _, n := range stats.HierarchyByLevel {
		total += n
	}
	require.GreaterOrEqual(total, 1, "five repetitions of \"ab\" should consolidate a level-1 hierarchy")

	res, err := s.e.ProcessInput(0, []byte("a"))
	require.NoError(err)
	require.Contains(string(res.Bytes), "b")
}

// Scenario 2: "hello" x20; "h" emits at least "e", "he" emits at least "l".
func (s *ScenarioSuite) TestScenario2_RepeatedHello() {
	require := require.New(s.T())

	s.train(20, "hello")

	res, err := s.e.ProcessInput(0, []byte("h"))
	require.NoError(err)
	require.Contains(string(res.Bytes), "e")

	res, err = s.e.ProcessInput(0, []byte("he"))
	require.NoError(err)
	require.Contains(string(res.Bytes), "l")
}

// Scenario 3: "cat meow" x10 then "dog bark" x10; the two continuations
// disambiguate via local edge weights, with no routing table involved.
func (s *ScenarioSuite) TestScenario3_DisambiguatesTwoPhrasesByLocalWeight() {
	require := require.New(s.T())

	s.train(10, "cat meow")
	s.train(10, "dog bark")

	catRes, err := s.e.ProcessInput(0, []byte("cat"))
	require.NoError(err)
	require.Contains(string(catRes.Bytes), " ")
	require.True(containsAny(string(catRes.Bytes), "meow"), "cat-> should include a meow byte, got %q", catRes.Bytes)

	dogRes, err := s.e.ProcessInput(0, []byte("dog"))
	require.NoError(err)
	require.Contains(string(dogRes.Bytes), " ")
	require.True(containsAny(string(dogRes.Bytes), "bark"), "dog-> should include a bark byte, got %q", dogRes.Bytes)

	require.NotEqual(string(catRes.Bytes), string(dogRes.Bytes))
}

// Scenario 4: three overlapping 4-grams trained 5x each; each single-byte
// continuation selects its argmax successor, then at least the one after.
func (s *ScenarioSuite) TestScenario4_ChainedFourGramsSelectByArgmax() {
	require := require.New(s.T())

	s.train(5, "abcd", "bcde", "cdef")

	resA, err := s.e.ProcessInput(0, []byte("a"))
	require.NoError(err)
	require.True(strings.HasPrefix(string(resA.Bytes), "b"), "input \"a\" should emit \"b\" first, got %q", resA.Bytes)
	require.Contains(string(resA.Bytes), "c")

	resB, err := s.e.ProcessInput(0, []byte("b"))
	require.NoError(err)
	require.True(strings.HasPrefix(string(resB.Bytes), "c"), "input \"b\" should emit \"c\" first, got %q", resB.Bytes)
	require.Contains(string(resB.Bytes), "d")

	resC, err := s.e.ProcessInput(0, []byte("c"))
	require.NoError(err)
	require.True(strings.HasPrefix(string(resC.Bytes), "d"), "input \"c\" should emit \"d\" first, got %q", resC.Bytes)
	require.Contains(string(resC.Bytes), "e")
}

// Scenario 5: save after training (2), load into a fresh instance, the
// loaded instance emits the same first byte for the same input.
func (s *ScenarioSuite) TestScenario5_SaveLoadRoundTripSameFirstByte() {
	require := require.New(s.T())

	s.train(20, "hello")

	blob, err := s.e.Save()
	require.NoError(err)

	loaded, err := cortex.Load(blob)
	require.NoError(err)

	origRes, err := s.e.ProcessInput(0, []byte("h"))
	require.NoError(err)
	loadedRes, err := loaded.ProcessInput(0, []byte("h"))
	require.NoError(err)

	require.NotEmpty(origRes.Bytes)
	require.NotEmpty(loadedRes.Bytes)
	require.Equal(origRes.Bytes[0], loadedRes.Bytes[0])
}

// Scenario 6: after training (2), feedback_error(0.0) right after emitting
// "ello" for "h" reinforces the path; the next emission for "h" still
// starts with "e".
func (s *ScenarioSuite) TestScenario6_LowErrorFeedbackReinforcesEmittedPath() {
	require := require.New(s.T())

	s.train(20, "hello")

	res, err := s.e.ProcessInput(0, []byte("h"))
	require.NoError(err)
	require.True(strings.HasPrefix(string(res.Bytes), "e"), "expected \"e\" first, got %q", res.Bytes)

	require.NoError(s.e.FeedbackError(0.0))

	res2, err := s.e.ProcessInput(0, []byte("h"))
	require.NoError(err)
	require.True(strings.HasPrefix(string(res2.Bytes), "e"), "reinforced path should still start with \"e\", got %q", res2.Bytes)
}

func containsAny(haystack, candidates string) bool {
	for _, c := range candidates {
		if strings.ContainsRune(haystack, c) {
			return true
		}
	}
	return false
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}
