package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mines3d/server/internal/config"
	"github.com/mines3d/server/internal/middleware"
	"github.com/mines3d/server/internal/mines"
	"github.com/mines3d/server/internal/repository"
	"github.com/mines3d/server/internal/solver"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
	solver solver.Options
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
	solverOpts solver.Options,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
		solver: solverOpts,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreateNewGameDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	gameParams := mines.GameParams(dto)
	if err := gameParams.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	if !gameParams.PointInBounds(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	game, err := mines.NewGame(&gameParams, pos.X, pos.Y, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to generate a new game", "error", err)
		return
	}

	b, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode game state", "error", err)
		return
	}

	claims, loggedIn := (r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims))

	var session *repository.GameSession
	if loggedIn {
		g.logger.Debug("creating player session", "claims", claims)
		session, err = g.repo.CreatePlayerSession(
			r.Context(), repository.CreatePlayerSessionParams{
				PlayerID:  &claims.PlayerId,
				Width:     int32(game.Width),
				Height:    int32(game.Height),
				MineCount: int32(game.MineCount),
				Unique:    game.Unique,
				Dead:      game.Dead,
				Won:       game.Won,
				State:     b,
			},
		)
	} else {
		g.logger.Debug("creating anonymous session")
		session, err = g.repo.CreateAnonymousSession(
			r.Context(), repository.CreateAnonymousSessionParams{
				Width:     int32(game.Width),
				Height:    int32(game.Height),
				MineCount: int32(game.MineCount),
				Unique:    game.Unique,
				Dead:      game.Dead,
				Won:       game.Won,
				State:     b,
			},
		)
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionID, session.StartedAt, nil, game,
	))
}

func (g GameHandler) fetchSession(w http.ResponseWriter, r *http.Request) (*repository.GameSession, *mines.GameState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}

	game, err := mines.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, false
	}

	return session, game, true
}

func (g GameHandler) updateSession(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *mines.GameState,
) bool {
	b, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return false
	}

	err = g.repo.UpdateSession(r.Context(), repository.UpdateSessionParams{
		GameSessionID: session.GameSessionID,
		State:         b,
		Dead:          game.Dead,
		Won:           game.Won,
		HintsUsed:     int32(game.HintsUsed),
		EndedAt:       session.EndedAt,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return false
	}
	return true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionID, session.StartedAt, session.EndedAt, game,
	))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	if !game.PointInBounds(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if game.Dead || game.Won {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("game is over")))
		return
	}

	switch move {
	case Open:
		game.OpenCell(pos.X, pos.Y)
	case Flag:
		game.FlagCell(pos.X, pos.Y)
	case Chord:
		game.ChordCell(pos.X, pos.Y)
	}

	if game.Won || game.Dead {
		game.RevealPlayerGrid()
		now := time.Now().UTC()
		session.EndedAt = &now
	}

	if !g.updateSession(w, r, session, game) {
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionID, session.StartedAt, session.EndedAt, game,
	))
}

// Hint asks the deductive solver for one move. Using a hint is recorded on
// the session and disqualifies it from the highscore table.
func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	hint, err := game.HintOpts(g.solver)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to compute hint", "error", err)
		return
	}

	if hint == nil {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("no hint available")))
		return
	}

	if !g.updateSession(w, r, session, game) {
		return
	}

	sendJSONOrLog(w, g.logger, hint)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	game.Forfeit()

	if session.EndedAt == nil {
		now := time.Now().UTC()
		session.EndedAt = &now
	}

	if !g.updateSession(w, r, session, game) {
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(
		session.GameSessionID, session.StartedAt, session.EndedAt, game,
	))
}
