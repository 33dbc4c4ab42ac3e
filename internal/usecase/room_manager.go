package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/trivia-backend/internal/apperror"
	"github.com/rocketscienceinc/trivia-backend/internal/entity"
	"github.com/rocketscienceinc/trivia-backend/internal/metrics"
	"github.com/rocketscienceinc/trivia-backend/internal/pkg"
	"github.com/rocketscienceinc/trivia-backend/internal/questions"
	"github.com/rocketscienceinc/trivia-backend/internal/repository"
)

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
}

type questionFetcher interface {
	Fetch(ctx context.Context, url string) ([]entity.Question, error)
}

// roomActor owns one room's in-memory state. Its mutex serializes every
// operation for that room, which is what makes the check-then-act sequences
// in SubmitAnswer race-free. State is loaded from the repository the first
// time the room is touched; operations arriving during the load queue
// behind the same lock.
type roomActor struct {
	mu     sync.Mutex
	loaded bool
	room   *entity.Room
}

// RoomManager routes each operation to the actor owning the target room,
// creating the actor on first reference. Different rooms share nothing and
// run concurrently.
type RoomManager struct {
	logger  *slog.Logger
	rooms   roomRepo
	fetcher questionFetcher
	metrics *metrics.Metrics

	mu     sync.Mutex
	actors map[string]*roomActor
}

func NewRoomManager(logger *slog.Logger, rooms roomRepo, fetcher questionFetcher, m *metrics.Metrics) *RoomManager {
	return &RoomManager{
		logger:  logger.With("component", "room-manager"),
		rooms:   rooms,
		fetcher: fetcher,
		metrics: m,

		actors: make(map[string]*roomActor),
	}
}

// CreateRoom mints a new room identifier. The room record itself is created
// lazily on the first join, init or answer, so nothing is persisted here.
func (that *RoomManager) CreateRoom() string {
	that.metrics.RoomsCreated.Inc()

	return pkg.GenerateRoomID()
}

// Join registers a player in the room. Re-joining is idempotent and never
// resets the player's score.
func (that *RoomManager) Join(ctx context.Context, roomID, playerID string) error {
	if playerID == "" {
		return apperror.ErrMissingPlayerID
	}

	actor := that.actor(roomID)
	actor.mu.Lock()
	defer actor.mu.Unlock()

	room, err := that.loadLocked(ctx, actor, roomID)
	if err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}

	if !room.Join(playerID) {
		return nil
	}

	if err = that.persist(ctx, room); err != nil {
		return err
	}

	that.logger.Info("player joined", "room", roomID, "player", playerID)

	return nil
}

// Init loads a question set, inline or fetched from a URL, and restarts the
// game. It may be called from any state, including mid-round or after the
// last question. Prior scores survive; round progress does not. On any
// failure the room is left exactly as it was.
func (that *RoomManager) Init(ctx context.Context, roomID string, inline []entity.Question, sourceURL string) error {
	actor := that.actor(roomID)
	actor.mu.Lock()
	defer actor.mu.Unlock()

	room, err := that.loadLocked(ctx, actor, roomID)
	if err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}

	var questionSet []entity.Question

	switch {
	case inline != nil:
		if err = questions.Validate(inline); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrInvalidInitPayload, err)
		}
		questionSet = inline
	case sourceURL != "":
		// A slow fetch delays this room's queued operations and nothing
		// else; polling clients retry naturally.
		if questionSet, err = that.fetcher.Fetch(ctx, sourceURL); err != nil {
			return fmt.Errorf("failed to fetch questions: %w", err)
		}
	default:
		return apperror.ErrInvalidInitPayload
	}

	room.Restart(questionSet)

	if err = that.persist(ctx, room); err != nil {
		return err
	}

	that.logger.Info("room initialized", "room", roomID, "questions", len(questionSet))

	return nil
}

// SubmitAnswer records one player's answer for the current round. Late,
// duplicate and post-decision submissions are dropped without error, since
// a polling client cannot know the server's round boundary. Only accepted
// submissions are persisted.
func (that *RoomManager) SubmitAnswer(ctx context.Context, roomID, playerID, answer string) error {
	that.metrics.AnswersSubmitted.Inc()

	actor := that.actor(roomID)
	actor.mu.Lock()
	defer actor.mu.Unlock()

	room, err := that.loadLocked(ctx, actor, roomID)
	if err != nil {
		return fmt.Errorf("failed to load room: %w", err)
	}

	if !room.SubmitAnswer(playerID, answer) {
		return nil
	}

	that.metrics.AnswersAccepted.Inc()

	if err = that.persist(ctx, room); err != nil {
		return err
	}

	if room.IsFinished() {
		that.logger.Info("game finished", "room", roomID)
	}

	return nil
}

// State returns a point-in-time snapshot of the room. It never mutates
// state and never persists.
func (that *RoomManager) State(ctx context.Context, roomID string) (entity.Snapshot, error) {
	actor := that.actor(roomID)
	actor.mu.Lock()
	defer actor.mu.Unlock()

	room, err := that.loadLocked(ctx, actor, roomID)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to load room: %w", err)
	}

	return room.Snapshot(), nil
}

func (that *RoomManager) actor(roomID string) *roomActor {
	that.mu.Lock()
	defer that.mu.Unlock()

	a, ok := that.actors[roomID]
	if !ok {
		a = &roomActor{}
		that.actors[roomID] = a
		that.metrics.ActiveRooms.Inc()
	}

	return a
}

// loadLocked performs the cold-start read. The caller must hold the actor
// lock. An absent record means a fresh Uninitialized room; a failed read is
// surfaced and retried on the next operation.
func (that *RoomManager) loadLocked(ctx context.Context, actor *roomActor, roomID string) (*entity.Room, error) {
	if actor.loaded {
		return actor.room, nil
	}

	room, err := that.rooms.GetByID(ctx, roomID)

	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		room = entity.NewRoom(roomID)
	case err != nil:
		return nil, err
	}

	actor.room = room
	actor.loaded = true

	return room, nil
}

// persist writes the whole room snapshot. On failure the in-memory state
// stays advanced and the error is surfaced as retryable; the next accepted
// mutation re-persists the full snapshot anyway.
func (that *RoomManager) persist(ctx context.Context, room *entity.Room) error {
	if err := that.rooms.CreateOrUpdate(ctx, room); err != nil {
		that.logger.Error("failed to persist room", "room", room.ID, "error", err)

		return fmt.Errorf("failed to persist room: %w", err)
	}

	return nil
}
