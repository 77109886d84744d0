package calendar

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"studiocal/internal/model"
)

func block(start, end int) Block {
	return Block{Week: 2, StartWeekday: start, EndWeekday: end}
}

func TestAssignLanes(t *testing.T) {
	in := []Block{block(3, 5), block(1, 3), block(6, 7), block(4, 7)}

	got := AssignLanes(in)

	want := []struct{ start, end, lane int }{
		{1, 3, 1},
		{3, 5, 2}, // lane 1 ends on weekday 3, so it cannot take a block starting on 3
		{4, 7, 1},
		{6, 7, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d blocks", len(got))
	}
	for i, w := range want {
		g := got[i]
		if g.StartWeekday != w.start || g.EndWeekday != w.end || g.Lane != w.lane {
			t.Errorf("block %d = %d..%d lane %d, want %d..%d lane %d",
				i, g.StartWeekday, g.EndWeekday, g.Lane, w.start, w.end, w.lane)
		}
	}

	if in[0].Lane != 0 {
		t.Error("AssignLanes modified its input")
	}
}

func TestAssignLanesStableTies(t *testing.T) {
	a := &model.EventRecord{Name: "a"}
	b := &model.EventRecord{Name: "b"}
	in := []Block{
		{Week: 1, StartWeekday: 2, EndWeekday: 2, Event: a},
		{Week: 1, StartWeekday: 2, EndWeekday: 4, Event: b},
	}

	got := AssignLanes(in)
	if got[0].Event != a || got[0].Lane != 1 {
		t.Errorf("first tied block should keep lane 1, got %s lane %d", got[0].Event.Name, got[0].Lane)
	}
	if got[1].Event != b || got[1].Lane != 2 {
		t.Errorf("second tied block should get lane 2, got %s lane %d", got[1].Event.Name, got[1].Lane)
	}
}

func TestAssignLanesEmpty(t *testing.T) {
	if got := AssignLanes(nil); len(got) != 0 {
		t.Errorf("expected no blocks, got %d", len(got))
	}
}

func TestAssignLanesMixedWeeksPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for blocks from different weeks")
		}
	}()
	AssignLanes([]Block{{Week: 1, StartWeekday: 1, EndWeekday: 1}, {Week: 2, StartWeekday: 1, EndWeekday: 1}})
}

func TestAssignLanesNoOverlapWithinLane(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rnd.Intn(9)
		in := make([]Block, n)
		for i := range in {
			s := 1 + rnd.Intn(7)
			e := s + rnd.Intn(8-s)
			in[i] = block(s, e)
		}

		got := AssignLanes(in)
		for i := range got {
			if got[i].Lane < 1 {
				t.Fatalf("round %d: block %d has no lane", round, i)
			}
			for j := i + 1; j < len(got); j++ {
				if got[i].Lane != got[j].Lane {
					continue
				}
				a, b := got[i], got[j]
				if !(a.EndWeekday < b.StartWeekday || b.EndWeekday < a.StartWeekday) {
					t.Fatalf("round %d: lane %d holds overlapping %d..%d and %d..%d",
						round, a.Lane, a.StartWeekday, a.EndWeekday, b.StartWeekday, b.EndWeekday)
				}
			}
		}
	}
}

func TestLayout(t *testing.T) {
	events := []model.EventRecord{
		{Name: "Счастье", StartDate: Date(2026, time.April, 13), EndDate: Date(2026, time.April, 15)},
		{Name: "Йога", StartDate: Date(2026, time.April, 15)},
		{Name: "DSN", StartDate: Date(2026, time.April, 16), EndDate: Date(2026, time.April, 20)},
		{Name: "Летний курс", StartDate: Date(2026, time.July, 1)},
	}

	l := NewWeekIndex().Layout(april2026, events)
	if len(l.Weeks) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(l.Weeks))
	}

	row3 := l.Weeks[2]
	if row3.Lanes != 2 {
		t.Errorf("row 3 lanes = %d, want 2", row3.Lanes)
	}
	lanes := map[string]int{}
	for _, b := range row3.Blocks {
		lanes[b.Event.Name] = b.Lane
	}
	wantLanes := map[string]int{"Счастье": 1, "Йога": 2, "DSN": 1}
	if !reflect.DeepEqual(lanes, wantLanes) {
		t.Errorf("row 3 lanes = %v, want %v", lanes, wantLanes)
	}

	if got := len(row3.Days[0].Blocks); got != 1 {
		t.Errorf("Monday of row 3 should start 1 block, got %d", got)
	}
	if got := row3.Days[3].Blocks; len(got) != 1 || got[0].Event.Name != "DSN" {
		t.Errorf("Thursday of row 3 should start DSN, got %v", got)
	}

	row4 := l.Weeks[3]
	if len(row4.Blocks) != 1 || row4.Blocks[0].Event.Name != "DSN" || row4.Blocks[0].EndWeekday != 1 {
		t.Errorf("row 4 should hold the DSN tail, got %v", spans(row4.Blocks))
	}

	for _, b := range l.Blocks() {
		if b.Event.Name == "Летний курс" {
			t.Error("event outside the grid was laid out")
		}
	}

	if !l.Weeks[0].Days[0].Date.Equal(Date(2026, time.March, 30)) || l.Weeks[0].Days[0].InMonth {
		t.Error("first cell should be 2026-03-30, outside the month")
	}
}

func TestLayoutDeterministic(t *testing.T) {
	events := []model.EventRecord{
		{Name: "a", StartDate: Date(2026, time.April, 6), EndDate: Date(2026, time.April, 9)},
		{Name: "b", StartDate: Date(2026, time.April, 8), EndDate: Date(2026, time.April, 14)},
		{Name: "c", StartDate: Date(2026, time.April, 8)},
		{Name: "d", StartDate: Date(2026, time.April, 10), EndDate: Date(2026, time.April, 12)},
	}

	first := NewWeekIndex().Layout(april2026, events)
	second := NewWeekIndex().Layout(april2026, events)
	if !reflect.DeepEqual(first, second) {
		t.Error("two layouts of the same events differ")
	}
}
