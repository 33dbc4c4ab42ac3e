package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestions() []Question {
	return []Question{
		{Question: "q1", Options: []string{"A", "B"}, Correct: "A"},
		{Question: "q2", Options: []string{"A", "B"}, Correct: "B"},
	}
}

func TestRoom_Phase(t *testing.T) {
	// Given: a fresh room
	room := NewRoom("123")

	// Then: it is uninitialized until the first restart
	require.Equal(t, PhaseUninitialized, room.Phase())

	// When: questions are loaded
	room.Restart(twoQuestions())

	// Then: round zero is active
	require.Equal(t, PhaseRoundActive, room.Phase())
	require.Equal(t, 0, room.Current)

	// When: the round index reaches the question count
	room.Current = 2

	// Then: the room is finished
	require.Equal(t, PhaseFinished, room.Phase())
	assert.True(t, room.IsFinished())
}

func TestRoom_Join(t *testing.T) {
	t.Run("Join is idempotent and preserves score", func(t *testing.T) {
		// Given: a room with one joined player holding a score
		room := NewRoom("123")
		require.True(t, room.Join("p1"))
		room.Players["p1"].Score = 3

		// When: the same player joins again
		changed := room.Join("p1")

		// Then: nothing changed and exactly one entry exists
		assert.False(t, changed)
		require.Len(t, room.Players, 1)
		assert.Equal(t, 3, room.Players["p1"].Score)
	})

	t.Run("Join has no effect on round state", func(t *testing.T) {
		// Given: a started room mid-round
		room := NewRoom("123")
		room.Join("p1")
		room.Restart(twoQuestions())
		room.SubmitAnswer("p1", "A")

		// When: a new player joins
		room.Join("p2")

		// Then: the round index and winner are untouched
		assert.Equal(t, 1, room.Current)
		assert.Empty(t, room.RoundWinner)
	})
}

func TestRoom_Restart(t *testing.T) {
	// Given: a room mid-game with scores and responded flags set
	room := NewRoom("123")
	room.Join("p1")
	room.Join("p2")
	room.Restart(twoQuestions())
	require.True(t, room.SubmitAnswer("p2", "X"))
	require.True(t, room.SubmitAnswer("p1", "A"))

	room.Players["p1"].Responded = true

	// When: the room is restarted with a fresh question set
	room.Restart(twoQuestions())

	// Then: round state is rewound while scores survive
	assert.Equal(t, 0, room.Current)
	assert.Empty(t, room.RoundWinner)
	assert.Equal(t, PhaseRoundActive, room.Phase())
	assert.Equal(t, 1, room.Players["p1"].Score)
	assert.Equal(t, 0, room.Players["p2"].Score)

	for id, player := range room.Players {
		assert.False(t, player.Responded, "player %s should be reset", id)
	}
}

func TestRoom_SubmitAnswer(t *testing.T) {
	t.Run("First correct answer wins the round", func(t *testing.T) {
		// Given: two players in round zero
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())

		// When: p1 answers correctly first
		accepted := room.SubmitAnswer("p1", "A")

		// Then: p1 is the winner with one point
		require.True(t, accepted)
		assert.Equal(t, "p1", room.RoundWinner)
		assert.Equal(t, 1, room.Players["p1"].Score)
		assert.True(t, room.Players["p1"].Responded)
	})

	t.Run("Answers after a winner are dropped, round can stall", func(t *testing.T) {
		// Given: p1 already won the round
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())
		require.True(t, room.SubmitAnswer("p1", "A"))

		// When: p2 also submits the correct answer
		accepted := room.SubmitAnswer("p2", "A")

		// Then: the submission is dropped, p2 never counts as responded and
		// the round does not advance
		assert.False(t, accepted)
		assert.Equal(t, "p1", room.RoundWinner)
		assert.Equal(t, 0, room.Players["p2"].Score)
		assert.False(t, room.Players["p2"].Responded)
		assert.Equal(t, 0, room.Current)
	})

	t.Run("Wrong answer marks responded without scoring", func(t *testing.T) {
		// Given: two players in round zero
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())

		// When: p2 answers wrong before anyone else
		accepted := room.SubmitAnswer("p2", "X")

		// Then: p2 responded, no score, no winner
		require.True(t, accepted)
		assert.True(t, room.Players["p2"].Responded)
		assert.Equal(t, 0, room.Players["p2"].Score)
		assert.Empty(t, room.RoundWinner)

		// When: p1 then answers correctly
		require.True(t, room.SubmitAnswer("p1", "A"))

		// Then: everyone responded, so the round advanced and reset
		assert.Equal(t, 1, room.Current)
		assert.Empty(t, room.RoundWinner)
		assert.Equal(t, 1, room.Players["p1"].Score)

		for id, player := range room.Players {
			assert.False(t, player.Responded, "player %s should be reset", id)
		}
	})

	t.Run("Duplicate answer from the same player is dropped", func(t *testing.T) {
		// Given: p2 already responded this round
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())
		require.True(t, room.SubmitAnswer("p2", "X"))

		// When: p2 answers again, correctly this time
		accepted := room.SubmitAnswer("p2", "A")

		// Then: the submission is dropped
		assert.False(t, accepted)
		assert.Equal(t, 0, room.Players["p2"].Score)
		assert.Empty(t, room.RoundWinner)
	})

	t.Run("Unknown player and unstarted room are dropped", func(t *testing.T) {
		// Given: an uninitialized room with one player
		room := NewRoom("123")
		room.Join("p1")

		// Then: answering before init is a no-op
		assert.False(t, room.SubmitAnswer("p1", "A"))

		// Given: a started room
		room.Restart(twoQuestions())

		// Then: an unknown player is a no-op
		assert.False(t, room.SubmitAnswer("ghost", "A"))
		assert.Empty(t, room.RoundWinner)
	})

	t.Run("Advancing past the last question finishes the game", func(t *testing.T) {
		// Given: one player and two questions
		room := NewRoom("123")
		room.Join("p1")
		room.Restart(twoQuestions())

		// When: the single player answers both rounds
		require.True(t, room.SubmitAnswer("p1", "A"))
		require.True(t, room.SubmitAnswer("p1", "B"))

		// Then: the room is finished and further answers are dropped
		assert.Equal(t, PhaseFinished, room.Phase())
		assert.Equal(t, 2, room.Players["p1"].Score)
		assert.False(t, room.SubmitAnswer("p1", "A"))
	})

	t.Run("Score never exceeds rounds won", func(t *testing.T) {
		// Given: two players racing through a full game
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())

		wins := map[string]int{}

		// When: every round p2 answers wrong, then p1 takes the win
		for room.Phase() == PhaseRoundActive {
			question, _ := room.CurrentQuestion()
			room.SubmitAnswer("p2", "X")
			room.SubmitAnswer("p1", question.Correct)
			wins["p1"]++
		}

		// Then: each score is bounded by the rounds that player won
		assert.LessOrEqual(t, room.Players["p1"].Score, wins["p1"])
		assert.LessOrEqual(t, room.Players["p2"].Score, wins["p2"])
	})
}

func TestRoom_Snapshot(t *testing.T) {
	t.Run("Snapshot reflects the active round", func(t *testing.T) {
		// Given: a started room with a recorded winner
		room := NewRoom("123")
		room.Join("p1")
		room.Join("p2")
		room.Restart(twoQuestions())
		require.True(t, room.SubmitAnswer("p1", "A"))

		// When: taking a snapshot
		snapshot := room.Snapshot()

		// Then: it carries the current question and winner
		require.NotNil(t, snapshot.Question)
		assert.Equal(t, "q1", snapshot.Question.Question)
		assert.Equal(t, "p1", snapshot.RoundWinner)
		assert.True(t, snapshot.HasStarted)
		assert.Equal(t, 0, snapshot.Current)
		assert.Equal(t, 1, snapshot.Players["p1"].Score)
	})

	t.Run("Snapshot is a copy and repeat reads are identical", func(t *testing.T) {
		// Given: a started room
		room := NewRoom("123")
		room.Join("p1")
		room.Restart(twoQuestions())

		// When: taking two snapshots and mutating the first
		first := room.Snapshot()
		second := room.Snapshot()

		state := first.Players["p1"]
		state.Score = 99
		first.Players["p1"] = state

		// Then: snapshots match each other and the room is untouched
		assert.Equal(t, second, room.Snapshot())
		assert.Equal(t, 0, room.Players["p1"].Score)
	})

	t.Run("Snapshot of a finished room has no question", func(t *testing.T) {
		// Given: a finished room
		room := NewRoom("123")
		room.Join("p1")
		room.Restart(twoQuestions()[:1])
		require.True(t, room.SubmitAnswer("p1", "A"))
		require.Equal(t, PhaseFinished, room.Phase())

		// When: taking a snapshot
		snapshot := room.Snapshot()

		// Then: the question is absent
		assert.Nil(t, snapshot.Question)
		assert.Equal(t, 1, snapshot.Current)
	})
}
