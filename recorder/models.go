package recorder

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Match is one game against one opponent.
type Match struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartedAt      time.Time
	EndedAt        *time.Time
	Turns          int
	Health         float64
	OpponentHealth float64
}

// TurnRecord stores the intents issued in one turn as JSON.
type TurnRecord struct {
	ID        uint      `gorm:"primaryKey"`
	MatchID   uuid.UUID `gorm:"type:uuid;index"`
	Turn      int       `gorm:"index"`
	SP        float64
	MP        float64
	Intents   datatypes.JSON
	Accepted  int
	CreatedAt time.Time
}

// BreachRecord is one opponent breach, attributed to the turn that read it.
type BreachRecord struct {
	ID      uint      `gorm:"primaryKey"`
	MatchID uuid.UUID `gorm:"type:uuid;index"`
	Turn    int
	X       int
	Y       int
}

var tables = []any{&Match{}, &TurnRecord{}, &BreachRecord{}}
