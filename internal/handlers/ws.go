package handlers

import (
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mines3d/server/internal/mines"
	"github.com/mines3d/server/internal/repository"
	"github.com/mines3d/server/internal/solver"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"h": 0,
	"r": 0,
}

// runCommand executes one line of the text protocol against the game
// state. "h" is the only command that produces a payload of its own.
func (g GameHandler) runCommand(game *mines.GameState, c string) (*solver.Hint, error) {
	parts := strings.Split(c, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return nil, nil
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, err
		}
		if !game.PointInBounds(x, y) {
			return nil, fmt.Errorf("invalid square coordinates")
		}
		game.OpenCell(x, y)
		return nil, nil
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, err
		}
		if !game.PointInBounds(x, y) {
			return nil, fmt.Errorf("invalid square coordinates")
		}
		game.FlagCell(x, y)
		return nil, nil
	case "c":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, err
		}
		if !game.PointInBounds(x, y) {
			return nil, fmt.Errorf("invalid square coordinates")
		}
		game.ChordCell(x, y)
		return nil, nil
	case "h":
		return game.HintOpts(g.solver)
	case "r":
		game.Forfeit()
		return nil, nil
	}
	return nil, fmt.Errorf("invalid command")
}

type wsUpdateDTO struct {
	*GameSessionDTO
	Hint *solver.Hint `json:"hint,omitempty"`
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		g.logger.Debug(fmt.Sprintf("\t> %s", text))

		var hint *solver.Hint
		for _, line := range iterBySep(text, "\n") {
			hint, err = g.runCommand(game, line)
			if err != nil {
				g.logger.Error("unable to process command", slog.Any("error", err))
				return
			}
			if game.Won || game.Dead {
				game.RevealPlayerGrid()
				now := time.Now().UTC()
				session.EndedAt = &now
				break
			}
		}

		b, err := game.Bytes()
		if err != nil {
			g.logger.Error("unable to serialize game state", slog.Any("error", err))
			return
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
			g.logger.Error("unable to update session in db", slog.Any("error", err))
			return
		}

		update := wsUpdateDTO{
			GameSessionDTO: NewGameSessionDTO(
				session.GameSessionID, session.StartedAt, session.EndedAt, game,
			),
			Hint: hint,
		}
		if err := c.WriteJSON(update); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}
