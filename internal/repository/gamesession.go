package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type GameSession struct {
	GameSessionID int64
	PlayerID      *int64
	Width         int32
	Height        int32
	MineCount     int32
	Unique        bool
	Dead          bool
	Won           bool
	HintsUsed     int32
	State         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreatePlayerSessionParams struct {
	PlayerID  *int64
	Width     int32
	Height    int32
	MineCount int32
	Unique    bool
	Dead      bool
	Won       bool
	State     []byte
}

func (q Queries) CreatePlayerSession(
	ctx context.Context, params CreatePlayerSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, "unique", dead, won, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @unique, @dead, @won, @state
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"player_id":  params.PlayerID,
			"width":      params.Width,
			"height":     params.Height,
			"mine_count": params.MineCount,
			"unique":     params.Unique,
			"dead":       params.Dead,
			"won":        params.Won,
			"state":      params.State,
		},
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

type CreateAnonymousSessionParams struct {
	Width     int32
	Height    int32
	MineCount int32
	Unique    bool
	Dead      bool
	Won       bool
	State     []byte
}

func (q Queries) CreateAnonymousSession(
	ctx context.Context, params CreateAnonymousSessionParams,
) (*GameSession, error) {
	return q.CreatePlayerSession(ctx, CreatePlayerSessionParams{
		PlayerID:  nil,
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Unique:    params.Unique,
		Dead:      params.Dead,
		Won:       params.Won,
		State:     params.State,
	})
}

func (q Queries) GetSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateSessionParams struct {
	GameSessionID int64
	State         []byte
	Dead          bool
	Won           bool
	HintsUsed     int32
	EndedAt       *time.Time
}

func (q Queries) UpdateSession(ctx context.Context, params UpdateSessionParams) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session SET
			state      = @state,
			dead       = @dead,
			won        = @won,
			hints_used = @hints_used,
			ended_at   = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionID,
			"state":           params.State,
			"dead":            params.Dead,
			"won":             params.Won,
			"hints_used":      params.HintsUsed,
			"ended_at":        params.EndedAt,
		},
	)
	return err
}
