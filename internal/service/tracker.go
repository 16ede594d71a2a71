package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chapmjs/bball-tracker/internal/store"
	"github.com/chapmjs/bball-tracker/internal/store/repository"
)

// Validation errors surfaced to the API layer as bad requests
var (
	ErrInvalidOutcome       = errors.New("invalid possession outcome")
	ErrMissingFailureReason = errors.New("failure reason required for FAILED possessions")
	ErrInvalidFailureReason = errors.New("invalid failure reason")
)

// EventPublisher publishes recorded events to a durable stream
type EventPublisher interface {
	PublishPossession(ctx context.Context, event interface{}) error
	PublishScoreUpdate(ctx context.Context, event interface{}) error
}

// Broadcaster fans an event out to connected live-feed clients
type Broadcaster interface {
	Broadcast(data []byte)
}

// SummaryCache caches computed live summaries
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const liveSummaryTTL = 15 * time.Second

// TrackerService records in-game events: possessions, shots and box-score
// lines. Each write is one statement; there is no cross-accessor
// transaction, matching the single-writer recording flow.
type TrackerService struct {
	possessionRepo *repository.PossessionRepository
	shotRepo       *repository.ShotRepository
	statsRepo      *repository.StatsRepository
	gameRepo       *repository.GameRepository

	// Optional collaborators; the tracker works without them
	publisher   EventPublisher
	broadcaster Broadcaster
	cache       SummaryCache
}

// NewTrackerService creates a new tracker service. publisher, broadcaster
// and cache may be nil.
func NewTrackerService(db *store.Database, publisher EventPublisher, broadcaster Broadcaster, cache SummaryCache) *TrackerService {
	return &TrackerService{
		possessionRepo: repository.NewPossessionRepository(db),
		shotRepo:       repository.NewShotRepository(db),
		statsRepo:      repository.NewStatsRepository(db),
		gameRepo:       repository.NewGameRepository(db),
		publisher:      publisher,
		broadcaster:    broadcaster,
		cache:          cache,
	}
}

// RecordPossession validates and stores a simple possession, then notifies
// live listeners. The failure reason is kept only when the outcome is
// FAILED; any reason sent with other outcomes is stored as absent.
func (s *TrackerService) RecordPossession(ctx context.Context, p *store.Possession) (*store.Possession, error) {
	failureType, err := normalizeOutcome(p.Outcome, p.FailureType)
	if err != nil {
		return nil, err
	}
	p.FailureType = failureType
	p.PlayersOnCourt = p.PlayersOnCourt.Normalize()

	possessionID, err := s.possessionRepo.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("recording possession: %w", err)
	}
	p.PossessionID = possessionID

	s.notify(ctx, "possession", p)
	s.invalidateSummary(ctx, p.GameID)

	return p, nil
}

// RecordDetailedPossession stores a detailed possession event
func (s *TrackerService) RecordDetailedPossession(ctx context.Context, p *store.DetailedPossession) (*store.DetailedPossession, error) {
	p.Lineup = p.Lineup.Normalize()

	possessionID, err := s.possessionRepo.InsertDetailed(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("recording detailed possession: %w", err)
	}
	p.PossessionID = possessionID

	s.notify(ctx, "detailed_possession", p)

	return p, nil
}

// RecordShot stores a shot attempt
func (s *TrackerService) RecordShot(ctx context.Context, shot *store.Shot) (*store.Shot, error) {
	shotID, err := s.shotRepo.Insert(ctx, shot)
	if err != nil {
		return nil, fmt.Errorf("recording shot: %w", err)
	}
	shot.ShotID = shotID

	return shot, nil
}

// SavePlayerStats upserts a full box-score line for (game, player).
// Absent fields arrive zero-valued and are stored as zero.
func (s *TrackerService) SavePlayerStats(ctx context.Context, stats *store.PlayerGameStats) error {
	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return fmt.Errorf("saving player stats: %w", err)
	}

	return nil
}

// GetGameStats returns all box-score lines for a game
func (s *TrackerService) GetGameStats(ctx context.Context, gameID int) ([]*store.PlayerGameStats, error) {
	stats, err := s.statsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game stats: %w", err)
	}
	return stats, nil
}

// GetPossessions returns a game's simple possessions in recorded order
func (s *TrackerService) GetPossessions(ctx context.Context, gameID int) ([]*store.Possession, error) {
	possessions, err := s.possessionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching possessions: %w", err)
	}
	return possessions, nil
}

// GetDetailedPossessions returns a game's detailed possessions
func (s *TrackerService) GetDetailedPossessions(ctx context.Context, gameID int) ([]*store.DetailedPossession, error) {
	possessions, err := s.possessionRepo.ListDetailedByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching detailed possessions: %w", err)
	}
	return possessions, nil
}

// LiveSummary is the in-game dashboard: running score plus the possession
// breakdown and current constraint for the active game.
type LiveSummary struct {
	Game        *store.Game         `json:"game"`
	Possessions *PossessionSummary  `json:"possessions"`
	Constraints *ConstraintAnalysis `json:"constraints"`
}

// GetLiveSummary computes the live dashboard for a game, served from cache
// when a fresh copy exists
func (s *TrackerService) GetLiveSummary(ctx context.Context, gameID int) (*LiveSummary, error) {
	cacheKey := summaryCacheKey(gameID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			summary := &LiveSummary{}
			if err := json.Unmarshal([]byte(cached), summary); err == nil {
				return summary, nil
			}
		}
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	possessions, err := s.possessionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching possessions: %w", err)
	}

	summary := &LiveSummary{
		Game:        game,
		Possessions: SummarizePossessions(possessions),
		Constraints: RankConstraints(possessions),
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), liveSummaryTTL); err != nil {
				log.Printf("caching live summary: %v", err)
			}
		}
	}

	return summary, nil
}

// NotifyScoreUpdate pushes a score change to live listeners
func (s *TrackerService) NotifyScoreUpdate(ctx context.Context, game *store.Game) {
	if s.publisher != nil {
		if err := s.publisher.PublishScoreUpdate(ctx, game); err != nil {
			log.Printf("publishing score update: %v", err)
		}
	}
	s.broadcast("score", game)
	s.invalidateSummary(ctx, game.GameID)
}

// notify publishes to the event stream and broadcasts to live clients.
// Delivery is best effort; a recording write never fails on fan-out.
func (s *TrackerService) notify(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher != nil {
		if err := s.publisher.PublishPossession(ctx, payload); err != nil {
			log.Printf("publishing %s event: %v", eventType, err)
		}
	}
	s.broadcast(eventType, payload)
}

func (s *TrackerService) broadcast(eventType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})
	if err != nil {
		log.Printf("encoding %s broadcast: %v", eventType, err)
		return
	}
	s.broadcaster.Broadcast(data)
}

func (s *TrackerService) invalidateSummary(ctx context.Context, gameID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, summaryCacheKey(gameID)); err != nil {
		log.Printf("invalidating live summary: %v", err)
	}
}

func summaryCacheKey(gameID int) string {
	return fmt.Sprintf("quicktrack:summary:game:%d", gameID)
}

// normalizeOutcome enforces the outcome/failure-reason invariant
func normalizeOutcome(outcome string, failureType sql.NullString) (sql.NullString, error) {
	switch outcome {
	case store.OutcomeGood, store.OutcomeNeutral:
		// A reason sent alongside a non-failed outcome is meaningless;
		// store it as absent.
		return sql.NullString{}, nil
	case store.OutcomeFailed:
		if !failureType.Valid || failureType.String == "" {
			return sql.NullString{}, ErrMissingFailureReason
		}
		switch failureType.String {
		case store.FailureTurnover, store.FailureBallAdvancement,
			store.FailureShotSelection, store.FailureBadProcess:
			return failureType, nil
		default:
			return sql.NullString{}, fmt.Errorf("%w: %s", ErrInvalidFailureReason, failureType.String)
		}
	default:
		return sql.NullString{}, fmt.Errorf("%w: %s", ErrInvalidOutcome, outcome)
	}
}
