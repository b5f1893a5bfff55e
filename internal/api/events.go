package api

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/service"
)

const streamWriteTimeout = 5 * time.Second

// streamMessage is one websocket frame. The first frame is a snapshot;
// every later frame carries one update.
type streamMessage struct {
	Type   string            `json:"type"`
	State  *game.BattleState `json:"state,omitempty"`
	Update *service.Update   `json:"update,omitempty"`
}

// StreamEvents upgrades to a websocket and pushes the battle's
// presentation events until the battle ends or the client leaves.
func (h *BattleHandler) StreamEvents(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	state, err := h.battles.GetBattle(id)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedOpenEventStream)
		return
	}
	updates, cancel := h.battles.Hub().Subscribe(id)
	defer cancel()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logging.Error(constants.ErrFailedOpenEventStream, err, logging.Fields{constants.LogFieldBattleID: id})
		return
	}
	defer conn.CloseNow()

	// Clients never send; CloseRead handles control frames and cancels ctx
	// when the peer goes away.
	ctx := conn.CloseRead(c.Request.Context())
	if err := writeFrame(ctx, conn, streamMessage{Type: "snapshot", State: &state}); err != nil {
		return
	}
	if state.Phase.Terminal() {
		conn.Close(websocket.StatusNormalClosure, "battle over")
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case u, open := <-updates:
			if !open {
				return
			}
			if err := writeFrame(ctx, conn, streamMessage{Type: "update", Update: &u}); err != nil {
				logging.Debug("event stream closed", logging.Fields{constants.LogFieldBattleID: id, "error": err.Error()})
				return
			}
			if u.Phase.Terminal() {
				conn.Close(websocket.StatusNormalClosure, "battle over")
				return
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, msg streamMessage) error {
	b, err := codec.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, b)
}
