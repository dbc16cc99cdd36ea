package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mines3d/server/internal/mines"
)

func TestParseCreateNewGameDTO(t *testing.T) {
	query, err := url.ParseQuery("width=9&height=9&mine_count=10&unique=true&x=4&y=4")
	require.NoError(t, err)

	dto, err := ParseCreateNewGameDTO(query)
	require.NoError(t, err)
	assert.Equal(t, CreateNewGameDTO{Width: 9, Height: 9, MineCount: 10, Unique: true}, dto)

	pos, err := ParsePosition(query)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 4, Y: 4}, pos)

	_, err = ParseCreateNewGameDTO(url.Values{"width": {"9"}})
	assert.Error(t, err)
}

func TestParseGameMove(t *testing.T) {
	for _, want := range []GameMove{Open, Flag, Chord} {
		got, err := ParseGameMove(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseGameMove("boop")
	assert.Error(t, err)
}

func TestNewGameSessionDTO(t *testing.T) {
	params := mines.GameParams{Width: 3, Height: 3, MineCount: 1}
	game := &mines.GameState{
		GameParams: params,
		Grid:       make([]bool, 9),
		PlayerGrid: make(mines.Grid, 9),
	}

	started := time.UnixMilli(1700000000000).UTC()
	dto := NewGameSessionDTO(42, started, nil, game)

	assert.Equal(t, "42", dto.GameSessionId)
	assert.Equal(t, int64(1700000000000), dto.StartedAt)
	assert.Nil(t, dto.EndedAt)
	assert.Equal(t, 3, dto.Width)
	assert.Zero(t, dto.HintsUsed)

	ended := started.Add(90 * time.Second)
	dto = NewGameSessionDTO(42, started, &ended, game)
	require.NotNil(t, dto.EndedAt)
	assert.Equal(t, ended.UnixMilli(), *dto.EndedAt)
}
