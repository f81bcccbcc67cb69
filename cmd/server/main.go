package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evermake/microgames/api"
	"github.com/evermake/microgames/canvas"
	"github.com/evermake/microgames/config"
	"github.com/evermake/microgames/events"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
	"github.com/evermake/microgames/joystick"
	"github.com/evermake/microgames/paddle"
	"github.com/evermake/microgames/wsserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	left, right := input.NewSlider(), input.NewSlider()
	surface := canvas.New(cfg.Game.SurfaceWidth, cfg.Game.SurfaceHeight)

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
		Surface:    surface,
		LeftInput:  left,
		RightInput: right,
		Driver:     game.NewTickerDriver(cfg.Game.TickInterval()),
		Rand:       seededRand(cfg.Game.RandomSeed),
	})
	if err != nil {
		log.Fatalf("Failed to create game engine: %v", err)
	}
	engine.Reset()

	// WebSocket render feed
	ws := wsserver.NewWebSocketHandler(engine, surface, left, right)
	ws.BroadcastInterval = cfg.BroadcastInterval()
	go ws.Run(ctx)

	// Redis event fan-out (optional)
	if cfg.RedisURL != "" {
		rdb, err := events.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		publisher := events.NewPublisher(rdb, cfg.RedisEventsChannel)
		engine.Subscribe(publisher.Listener)
		go publisher.Run(ctx)

		events.StartControlSubscriber(ctx, rdb, cfg.RedisControlChannel, engine)
	} else {
		log.Println("[EVENTS] REDIS_URL not set, event fan-out disabled")
	}

	// Joystick controllers (optional)
	if cfg.JoystickAddr != "" {
		js := joystick.NewServer(cfg.JoystickAddr, left, right)
		js.OnButton = func(side paddle.Side) {
			log.Printf("[JOYSTICK] %s button pressed", side)
			engine.Toggle()
		}
		go func() {
			if err := js.ListenAndServe(ctx); err != nil {
				log.Printf("[JOYSTICK] Listener failed: %v", err)
			}
		}()
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, api.Deps{
		Engine: engine,
		Left:   left,
		Right:  right,
		WS:     ws,
	}, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting pong server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	engine.Pause()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// seededRand returns a deterministic source for a non-zero seed and nil, which
// lets the engine pick a time-seeded one, otherwise.
func seededRand(seed int64) game.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
