package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
)

type SettlementRepository struct {
	mu   sync.RWMutex
	rows map[string][]settlement.ScoreRow
}

func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{rows: make(map[string][]settlement.ScoreRow)}
}

func settlementKey(teamID string, round int) string {
	return fmt.Sprintf("%s::%d", teamID, round)
}

func (r *SettlementRepository) ListByRound(_ context.Context, round int) ([]settlement.ScoreRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]settlement.ScoreRow, 0)
	for _, rows := range r.rows {
		for _, row := range rows {
			if row.Round == round {
				out = append(out, row)
			}
		}
	}
	sortScoreRows(out)

	return out, nil
}

func (r *SettlementRepository) ListAll(_ context.Context) ([]settlement.ScoreRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]settlement.ScoreRow, 0)
	for _, rows := range r.rows {
		out = append(out, rows...)
	}
	sortScoreRows(out)

	return out, nil
}

func (r *SettlementRepository) ReplaceByTeamAndRound(_ context.Context, teamID string, round int, rows []settlement.ScoreRow) error {
	cloned := make([]settlement.ScoreRow, len(rows))
	copy(cloned, rows)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := settlementKey(teamID, round)
	if len(cloned) == 0 {
		delete(r.rows, key)
		return nil
	}
	r.rows[key] = cloned

	return nil
}

func sortScoreRows(rows []settlement.ScoreRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Round != rows[j].Round {
			return rows[i].Round < rows[j].Round
		}
		if rows[i].TeamID != rows[j].TeamID {
			return rows[i].TeamID < rows[j].TeamID
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}
