package entity

// Phase describes where a room is in its lifecycle. It is derived from the
// persisted fields rather than stored, so a loaded snapshot can never
// disagree with it.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseRoundActive   Phase = "round_active"
	PhaseFinished      Phase = "finished"
)

// Question is opaque to the room except for the correct-answer marker.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Correct  string   `json:"correct"`
}

type PlayerState struct {
	Score     int  `json:"score"`
	Responded bool `json:"responded"`
}

// Room is the unit of isolation and persistence: one per room ID, mutated
// only by its owning actor, persisted as a whole snapshot after every
// accepted mutation.
type Room struct {
	ID          string                  `json:"id"`
	Players     map[string]*PlayerState `json:"players"`
	Questions   []Question              `json:"questions"`
	Current     int                     `json:"current"`
	Started     bool                    `json:"has_started"`
	RoundWinner string                  `json:"round_winner,omitempty"`
}

// Snapshot is the read-only view returned to polling clients. The winner
// key is always present on the wire, empty when the round is undecided.
type Snapshot struct {
	Players     map[string]PlayerState `json:"players"`
	HasStarted  bool                   `json:"hasStarted"`
	Current     int                    `json:"current"`
	Question    *Question              `json:"question"`
	RoundWinner string                 `json:"roundWinner"`
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Players: make(map[string]*PlayerState),
	}
}

func (that *Room) Phase() Phase {
	switch {
	case !that.Started:
		return PhaseUninitialized
	case that.Current >= len(that.Questions):
		return PhaseFinished
	default:
		return PhaseRoundActive
	}
}

func (that *Room) IsFinished() bool {
	return that.Phase() == PhaseFinished
}

// Join registers a player. Joining is idempotent: a known player keeps its
// score and responded flag. Reports whether the room changed.
func (that *Room) Join(playerID string) bool {
	if that.Players == nil {
		that.Players = make(map[string]*PlayerState)
	}

	if _, ok := that.Players[playerID]; ok {
		return false
	}

	that.Players[playerID] = &PlayerState{}

	return true
}

// Restart replaces the question set and rewinds the room to round zero.
// Valid from any phase, including mid-round and Finished. Player scores
// survive; responded flags and the round winner do not.
func (that *Room) Restart(questions []Question) {
	that.Questions = questions
	that.Current = 0
	that.Started = true
	that.RoundWinner = ""

	for _, player := range that.Players {
		player.Responded = false
	}
}

// CurrentQuestion returns the question for the active round, or false when
// the room is uninitialized or finished.
func (that *Room) CurrentQuestion() (Question, bool) {
	if that.Phase() != PhaseRoundActive {
		return Question{}, false
	}

	return that.Questions[that.Current], true
}

// SubmitAnswer records one player's answer for the current round and
// reports whether it was accepted. A submission is silently dropped when
// the room is not in an active round, the player is unknown, the player
// already responded, or a round winner is already recorded. Note the last
// guard: a recorded winner drops every later answer, including from
// players who never responded, so the all-responded advance can stall
// until the next Restart.
func (that *Room) SubmitAnswer(playerID, answer string) bool {
	if that.Phase() != PhaseRoundActive || that.RoundWinner != "" {
		return false
	}

	player, ok := that.Players[playerID]
	if !ok || player.Responded {
		return false
	}

	if answer == that.Questions[that.Current].Correct {
		player.Score++
		that.RoundWinner = playerID
	}

	player.Responded = true

	if that.allResponded() {
		that.advanceRound()
	}

	return true
}

// Snapshot copies the observable state. The question is nil outside an
// active round.
func (that *Room) Snapshot() Snapshot {
	players := make(map[string]PlayerState, len(that.Players))
	for id, player := range that.Players {
		players[id] = *player
	}

	snapshot := Snapshot{
		Players:     players,
		HasStarted:  that.Started,
		Current:     that.Current,
		RoundWinner: that.RoundWinner,
	}

	if question, ok := that.CurrentQuestion(); ok {
		snapshot.Question = &question
	}

	return snapshot
}

func (that *Room) allResponded() bool {
	for _, player := range that.Players {
		if !player.Responded {
			return false
		}
	}

	return true
}

func (that *Room) advanceRound() {
	that.Current++
	that.RoundWinner = ""

	for _, player := range that.Players {
		player.Responded = false
	}
}
