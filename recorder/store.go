package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoMatch is returned when a turn is recorded before StartMatch.
var ErrNoMatch = errors.New("no match started")

const defaultSqliteDSN = "funnel.db"

// Config selects the backend. Driver is "sqlite" or "postgres".
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// New returns a Store when recording is enabled and a Noop otherwise.
func New(cfg Config) (Recorder, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	return Open(cfg)
}

// Store writes matches through gorm.
type Store struct {
	db      *gorm.DB
	matchID uuid.UUID
	now     func() time.Time
}

// Open connects and migrates the schema.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = defaultSqliteDSN
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		if cfg.DSN == "" {
			return nil, errors.New("postgres recorder needs a dsn")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown recorder driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s recorder: %w", dialector.Name(), err)
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return nil, fmt.Errorf("migrate recorder schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// MatchID is the current match, or uuid.Nil before StartMatch.
func (s *Store) MatchID() uuid.UUID { return s.matchID }

func (s *Store) StartMatch(ctx context.Context) error {
	m := Match{ID: uuid.New(), StartedAt: s.now().UTC()}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	s.matchID = m.ID
	return nil
}

func (s *Store) RecordTurn(ctx context.Context, t TurnSummary) error {
	if s.matchID == uuid.Nil {
		return ErrNoMatch
	}
	intents, err := json.Marshal(t.Intents)
	if err != nil {
		return fmt.Errorf("encode intents: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := TurnRecord{
			MatchID:  s.matchID,
			Turn:     t.Turn,
			SP:       t.Resources.SP,
			MP:       t.Resources.MP,
			Intents:  datatypes.JSON(intents),
			Accepted: t.Accepted,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("create turn %d: %w", t.Turn, err)
		}
		if len(t.Breaches) == 0 {
			return nil
		}
		breaches := make([]BreachRecord, len(t.Breaches))
		for i, c := range t.Breaches {
			breaches[i] = BreachRecord{MatchID: s.matchID, Turn: t.Turn, X: c.X, Y: c.Y}
		}
		if err := tx.Create(&breaches).Error; err != nil {
			return fmt.Errorf("create breaches for turn %d: %w", t.Turn, err)
		}
		return nil
	})
}

func (s *Store) EndMatch(ctx context.Context, r Result) error {
	if s.matchID == uuid.Nil {
		return ErrNoMatch
	}
	ended := s.now().UTC()
	err := s.db.WithContext(ctx).Model(&Match{}).Where("id = ?", s.matchID).Updates(map[string]any{
		"ended_at":        ended,
		"turns":           r.Turn,
		"health":          r.Health,
		"opponent_health": r.OpponentHealth,
	}).Error
	if err != nil {
		return fmt.Errorf("end match: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access sql interface: %w", err)
	}
	return sqlDB.Close()
}
