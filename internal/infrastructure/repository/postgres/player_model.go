package postgres

import "time"

type playerTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	ClubID    int64      `db:"club_id"`
	Position  string     `db:"position"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	ClubID   int64  `db:"club_id"`
	Position string `db:"position"`
}
