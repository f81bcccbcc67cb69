package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/evermake/microgames/canvas"
	"github.com/evermake/microgames/config"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/joystick"
	"github.com/evermake/microgames/paddle"
	"github.com/evermake/microgames/render"
)

const (
	boardCols = 80
	boardRows = 20
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid configuration:", err)
		return
	}

	// Log lines would tear the frame; keep them only when asked to.
	if path := os.Getenv("PONG_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Println("Error opening log file:", err)
			return
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	left, right := input.NewSlider(), input.NewSlider()

	var rnd game.Rand
	if cfg.Game.RandomSeed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Game.RandomSeed))
	}

	engine, err := game.NewEngine(game.Options{
		BallMaxSpeed:   cfg.Game.BallMaxSpeed,
		PaddleMaxSpeed: cfg.Game.PaddleMaxSpeed,
		PaddleWidth:    cfg.Game.PaddleWidth,
		PaddleHeight:   cfg.Game.PaddleHeight,
		BallRadius:     cfg.Game.BallRadius,
		Colors: game.Colors{
			Ball:        cfg.Game.BallColor,
			LeftPaddle:  cfg.Game.LeftPaddleColor,
			RightPaddle: cfg.Game.RightPaddleColor,
		},
		Surface:    canvas.New(cfg.Game.SurfaceWidth, cfg.Game.SurfaceHeight),
		LeftInput:  left,
		RightInput: right,
		Driver:     game.NewTickerDriver(cfg.Game.TickInterval()),
		Rand:       rnd,
	})
	if err != nil {
		fmt.Println("Error creating game:", err)
		return
	}
	engine.Reset()
	defer engine.Pause()

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler(left, right)
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Joystick clients can play alongside the keyboard.
	if cfg.JoystickAddr != "" {
		js := joystick.NewServer(cfg.JoystickAddr, left, right)
		js.OnButton = func(paddle.Side) { engine.Toggle() }
		go func() {
			if err := js.ListenAndServe(ctx); err != nil {
				log.Printf("[JOYSTICK] Listener failed: %v", err)
			}
		}()
	}

	renderer := render.NewTerminalRenderer(boardCols, boardRows, os.Stdout)
	renderer.HideCursor()
	defer renderer.ShowCursor()

	inputChan := inputHandler.GetInputChan()

	ticker := time.NewTicker(cfg.BroadcastInterval())
	defer ticker.Stop()

	renderer.Render(engine.Snapshot())

	for {
		select {
		case in, ok := <-inputChan:
			if !ok {
				return
			}

			switch inputHandler.Apply(in) {
			case input.CommandQuit:
				fmt.Println("\n  Thanks for playing!")
				return
			case input.CommandToggle:
				engine.Toggle()
			case input.CommandReset:
				engine.Reset()
			}
			renderer.Render(engine.Snapshot())

		case <-ticker.C:
			renderer.Render(engine.Snapshot())
		}
	}
}
