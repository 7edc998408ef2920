package settlement

import (
	"reflect"
	"testing"

	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

func testLineup() lineup.Lineup {
	return lineup.Lineup{
		TeamID: "team-a",
		Round:  7,
		Entries: []lineup.Entry{
			{TeamID: "team-a", Round: 7, PlayerID: 1, Role: lineup.Starter(), Position: player.PositionGoalkeeper},
			{TeamID: "team-a", Round: 7, PlayerID: 2, Role: lineup.Starter(), Position: player.PositionDefender},
			{TeamID: "team-a", Round: 7, PlayerID: 3, Role: lineup.Starter(), Position: player.PositionForward, IsCaptain: true},
			{TeamID: "team-a", Round: 7, PlayerID: 10, Role: lineup.BenchPriority(1), Position: player.PositionDefender},
			{TeamID: "team-a", Round: 7, PlayerID: 11, Role: lineup.BenchPriority(2), Position: player.PositionDefender},
		},
	}
}

func played(minutes float64) PlayStatus {
	return PlayStatus{Known: true, Finished: true, Minutes: minutes}
}

func TestResolveSwapsBenchedStarter(t *testing.T) {
	t.Parallel()

	in := Input{
		Lineup: testLineup(),
		StatusByPlayer: map[int64]PlayStatus{
			1:  played(90),
			2:  played(0), // finished without minutes: substitution-eligible
			3:  played(90),
			10: played(60),
		},
		PointsByPlayer: map[int64]float64{1: 5, 2: 3, 3: 8, 10: 4, 11: 2},
	}

	rows := Resolve(in)
	byID := map[int64]ScoreRow{}
	for _, r := range rows {
		byID[r.PlayerID] = r
	}

	if byID[2].IsActive {
		t.Fatalf("starter 2 should be replaced")
	}
	if !byID[10].IsActive {
		t.Fatalf("bench priority 1 should come in")
	}
	if byID[11].IsActive {
		t.Fatalf("bench priority 2 must stay out")
	}
	if got := TeamTotal(rows); got != 5+8*1.5+4 {
		t.Fatalf("team total = %v, want %v", got, 5+8*1.5+4)
	}
}

func TestResolveBenchConsumedOnce(t *testing.T) {
	t.Parallel()

	l := testLineup()
	l.Entries = append(l.Entries, lineup.Entry{
		TeamID: "team-a", Round: 7, PlayerID: 4, Role: lineup.Starter(), Position: player.PositionDefender,
	})

	in := Input{
		Lineup: l,
		StatusByPlayer: map[int64]PlayStatus{
			1: played(90), 3: played(90),
			2: played(0), 4: played(0), // two defenders out
			10: played(70), 11: played(20),
		},
		PointsByPlayer: map[int64]float64{10: 4, 11: 2},
	}

	rows := Resolve(in)
	byID := map[int64]ScoreRow{}
	for _, r := range rows {
		byID[r.PlayerID] = r
	}

	if !byID[10].IsActive || !byID[11].IsActive {
		t.Fatalf("both bench defenders should enter, got %+v", rows)
	}
	if byID[2].IsActive || byID[4].IsActive {
		t.Fatalf("both missing starters should be replaced, got %+v", rows)
	}
}

func TestResolvePositionGroupIsStrict(t *testing.T) {
	t.Parallel()

	in := Input{
		Lineup: testLineup(),
		StatusByPlayer: map[int64]PlayStatus{
			1: played(90), 2: played(90),
			3: played(0), // forward out, bench has only defenders
		},
		PointsByPlayer: map[int64]float64{3: 2},
	}

	rows := Resolve(in)
	for _, r := range rows {
		if r.PlayerID == 3 && !r.IsActive {
			t.Fatalf("forward must stay active without a matching bench candidate")
		}
		if (r.PlayerID == 10 || r.PlayerID == 11) && r.IsActive {
			t.Fatalf("defender bench must not cover a forward slot")
		}
	}
}

func TestResolveClubFallback(t *testing.T) {
	t.Parallel()

	in := Input{
		Lineup: testLineup(),
		StatusByPlayer: map[int64]PlayStatus{
			1: played(90), 3: played(90),
			// player 2 has no stat line at all
		},
		ClubByPlayer: map[int64]int64{2: 500},
		ClubFinished: map[int64]bool{500: true},
		PointsByPlayer: map[int64]float64{10: 4},
	}

	rows := Resolve(in)
	for _, r := range rows {
		if r.PlayerID == 2 && r.IsActive {
			t.Fatalf("starter with finished club game and no line should be benched")
		}
		if r.PlayerID == 10 && !r.IsActive {
			t.Fatalf("bench defender should replace the no-show starter")
		}
	}

	// Same input with the club game still running: no substitution.
	in.ClubFinished[500] = false
	rows = Resolve(in)
	for _, r := range rows {
		if r.PlayerID == 2 && !r.IsActive {
			t.Fatalf("starter must stay active while the club game is unresolved")
		}
	}
}

func TestResolveCaptainMultiplierKeysOffActive(t *testing.T) {
	t.Parallel()

	l := lineup.Lineup{
		TeamID: "team-a",
		Round:  3,
		Entries: []lineup.Entry{
			{PlayerID: 3, Role: lineup.Starter(), Position: player.PositionForward, IsCaptain: true},
			{PlayerID: 20, Role: lineup.BenchPriority(1), Position: player.PositionForward},
		},
	}

	// Captain eligible but no forward on the bench played status doesn't
	// matter: there is a candidate, so the captain goes out and loses
	// the multiplier.
	in := Input{
		Lineup: l,
		StatusByPlayer: map[int64]PlayStatus{
			3: played(0), 20: played(88),
		},
		PointsByPlayer: map[int64]float64{3: 4, 20: 6},
	}
	rows := Resolve(in)
	for _, r := range rows {
		if r.PlayerID == 3 {
			if r.IsActive {
				t.Fatalf("replaced captain must be inactive")
			}
			if r.Points != 4 {
				t.Fatalf("benched captain keeps raw points, got %v", r.Points)
			}
			if !r.IsCaptain {
				t.Fatalf("captain flag must copy through")
			}
		}
	}

	// Without a candidate the captain stays in and keeps the multiplier.
	in.Lineup.Entries = in.Lineup.Entries[:1]
	rows = Resolve(in)
	if rows[0].Points != 6 {
		t.Fatalf("unreplaced captain points = %v, want 6", rows[0].Points)
	}
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	in := Input{
		Lineup: testLineup(),
		StatusByPlayer: map[int64]PlayStatus{
			1: played(90), 2: played(0), 3: played(90), 10: played(30),
		},
		PointsByPlayer: map[int64]float64{1: 5, 2: 3, 3: 8, 10: 4, 11: 2},
	}

	first := Resolve(in)
	for i := 0; i < 5; i++ {
		if again := Resolve(in); !reflect.DeepEqual(first, again) {
			t.Fatalf("settlement not idempotent:\n%+v\n%+v", first, again)
		}
	}
}
