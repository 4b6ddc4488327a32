package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-labyrinth/internal/storage"
)

type fakeRuns struct {
	runs []storage.Run
	err  error
}

func (f fakeRuns) TopRuns(limit int) ([]storage.Run, error) {
	if len(f.runs) > limit {
		return f.runs[:limit], f.err
	}
	return f.runs, f.err
}

func (f fakeRuns) RunsForSeed(seed int64) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range f.runs {
		if r.Seed == seed {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f fakeRuns) GetStats() (*storage.Stats, error) {
	return &storage.Stats{Runs: len(f.runs), HighScore: 9}, f.err
}

func TestScoreboardFilterBySeed(t *testing.T) {
	src := fakeRuns{runs: []storage.Run{
		{Seed: 1, Score: 9, Won: true, Width: 5, Height: 5, Duration: time.Minute, CreatedAt: time.Now()},
		{Seed: 2, Score: 4, Width: 5, Height: 5, CreatedAt: time.Now()},
		{Seed: 1, Score: 2, Width: 5, Height: 5, CreatedAt: time.Now()},
	}}
	m := NewScoreboardModel(src, 1, 100, 30)
	assert.Len(t, m.Runs(), 3)
	assert.Contains(t, m.View(), "3 runs")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Len(t, m.Runs(), 2)
	assert.Contains(t, m.View(), "seed 1")
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(nil, 0, 80, 24)
	assert.Contains(t, m.View(), "No runs recorded yet")

	m = NewScoreboardModel(fakeRuns{err: errors.New("locked")}, 0, 80, 24)
	assert.Contains(t, m.View(), "error: locked")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(fakeRuns{}, 0, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
