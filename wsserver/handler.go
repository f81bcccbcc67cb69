package wsserver

import (
	"fmt"
	"log"

	"github.com/evermake/microgames/client"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/paddle"
	"github.com/evermake/microgames/pongpb"
)

func (wsh *WebSocketHandler) handleMessage(c *client.Client, message *pongpb.Message) {
	switch message.Type {
	case pongpb.MsgTypeInit:
		wsh.handleInitMessage(c, message.Init)

	case pongpb.MsgTypeSpeed:
		wsh.handleSpeedMessage(c, message.Speed)

	case pongpb.MsgTypeControl:
		wsh.handleControlMessage(c, message.Control)

	default:
		log.Printf("[WS] Unknown message type from client %s: %v", c.ID, message.Type)
		wsh.sendError(c, "unsupported message type "+message.Type.String())
	}
}

// handleInitMessage sizes the shared canvas to the renderer's surface, which
// must fit both paddles. The game is reset only when the surface is first
// attached or its size changes, so a second renderer joining does not
// interrupt the rally.
func (wsh *WebSocketHandler) handleInitMessage(c *client.Client, init *pongpb.InitMessage) {
	if init == nil || !(init.Width > 0) || !(init.Height > 0) {
		wsh.sendError(c, "init requires a positive width and height")
		return
	}

	snap := wsh.Engine.Snapshot()
	if init.Height < snap.LeftPaddle.Height || init.Width < 2*snap.LeftPaddle.Width {
		wsh.sendError(c, fmt.Sprintf("init surface %vx%v cannot fit two %vx%v paddles",
			init.Width, init.Height, snap.LeftPaddle.Width, snap.LeftPaddle.Height))
		return
	}

	if !snap.Attached || snap.Width != init.Width || snap.Height != init.Height {
		wsh.Canvas.Resize(init.Width, init.Height)
		wsh.Engine.AttachSurface(wsh.Canvas)
		if err := wsh.Engine.Apply(game.ActionReset); err != nil {
			log.Printf("[WS] Reset failed: %v", err)
		}
		log.Printf("[WS] Surface set to %.0fx%.0f by client %s", init.Width, init.Height, c.ID)
	}

	wsh.sendGameState(c)
}

func (wsh *WebSocketHandler) handleSpeedMessage(c *client.Client, speed *pongpb.SpeedMessage) {
	if speed == nil {
		wsh.sendError(c, "speed message without payload")
		return
	}

	side, err := paddle.ParseSide(speed.Side)
	if err != nil {
		wsh.sendError(c, err.Error())
		return
	}

	if side == paddle.Left {
		wsh.Left.Set(speed.Percent)
	} else {
		wsh.Right.Set(speed.Percent)
	}
}

func (wsh *WebSocketHandler) handleControlMessage(c *client.Client, control *pongpb.ControlMessage) {
	if control == nil {
		wsh.sendError(c, "control message without payload")
		return
	}

	action, err := game.ParseAction(control.Action)
	if err == nil {
		err = wsh.Engine.Apply(action)
	}
	if err != nil {
		wsh.sendError(c, err.Error())
		return
	}
	log.Printf("[WS] Client %s sent %s", c.ID, action)
}

func (wsh *WebSocketHandler) sendGameState(c *client.Client) {
	encoded, err := pongpb.Marshal(gameStateMessage(wsh.Engine.Snapshot()))
	if err != nil {
		log.Printf("[WS] Failed to marshal game state: %v", err)
		return
	}
	c.Send(encoded)
}

// sendError sends an error message to a client
func (wsh *WebSocketHandler) sendError(c *client.Client, errorMsg string) {
	encoded, err := pongpb.Marshal(&pongpb.Message{
		Type:  pongpb.MsgTypeError,
		Error: &pongpb.ErrorMessage{Error: errorMsg},
	})
	if err != nil {
		log.Printf("[WS] Failed to marshal error message: %v", err)
		return
	}
	c.Send(encoded)
}

func gameStateMessage(snap game.Snapshot) *pongpb.Message {
	return &pongpb.Message{
		Type: pongpb.MsgTypeGameState,
		GameState: &pongpb.GameStateMessage{
			State:      string(snap.State),
			LeftScore:  int32(snap.Scores.Left),
			RightScore: int32(snap.Scores.Right),
			Ball: &pongpb.Ball{
				X:      snap.Ball.X,
				Y:      snap.Ball.Y,
				Radius: snap.Ball.Radius,
			},
			LeftPaddle:  paddleMessage(snap.LeftPaddle),
			RightPaddle: paddleMessage(snap.RightPaddle),
			Width:       snap.Width,
			Height:      snap.Height,
		},
	}
}

func paddleMessage(r game.Rect) *pongpb.Paddle {
	return &pongpb.Paddle{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
