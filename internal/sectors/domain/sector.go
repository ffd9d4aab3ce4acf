package domain

import "time"

// MaxSectorNameLen matches the width of the name column.
const MaxSectorNameLen = 100

type Sector struct {
	ID        int64
	Name      string // trimmed, unique, 1..MaxSectorNameLen runes
	CreatedAt time.Time
	UpdatedAt time.Time
}
