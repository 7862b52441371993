package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/genius/api"
	"github.com/lixenwraith/genius/audio"
	"github.com/lixenwraith/genius/config"
	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/core"
	"github.com/lixenwraith/genius/engine"
	"github.com/lixenwraith/genius/events"
	"github.com/lixenwraith/genius/game"
	"github.com/lixenwraith/genius/input"
	"github.com/lixenwraith/genius/render"
	"github.com/lixenwraith/genius/sequence"
	"github.com/lixenwraith/genius/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "genius: %v\n", err)
		os.Exit(2)
	}

	logger, logFile := setupLogging(cfg.Debug, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exit")
		fmt.Fprintf(os.Stderr, "genius: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	core.SetCrashTerminal(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Audio failure degrades to silent play
	sound := audio.NewSoundManager(cfg.AudioEnabled, cfg.MasterVolume, logger.With().Str("component", "audio").Logger())
	if err := sound.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("continuing without audio")
	} else {
		defer sound.Cleanup()
	}

	queue := events.NewEventQueue()
	clock := engine.NewMonotonicTimeProvider()
	ctrl := game.NewController(
		engine.NewScheduler(clock),
		sequence.NewSeededGenerator(cfg.Seed),
		queue,
		game.WithLogger(logger.With().Str("component", "game").Logger()),
		game.WithDifficulty(cfg.Difficulty),
	)

	display := render.NewDisplay(screen)
	router := events.NewRouter[game.State](queue)
	router.Register(display)
	router.Register(audio.NewFeedback(sound))

	stats := status.NewRegistry()
	router.Register(status.NewRecorder(stats))

	machine := input.NewMachine(display)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A nil channel never fires, the HTTP surface is optional
	var commands <-chan api.Command
	if cfg.HTTPAddr != "" {
		srv := api.New(ctrl.State, stats, logger.With().Str("component", "http").Logger())
		commands = srv.Commands()
		core.Go(func() {
			if err := srv.Serve(ctx, cfg.HTTPAddr); err != nil {
				logger.Error().Err(err).Msg("http control stopped")
			}
		})
	}

	eventChan := make(chan tcell.Event, constants.TerminalEventBuffer)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Clean exit on screen finalization
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	logger.Info().
		Str("difficulty", cfg.Difficulty.String()).
		Int64("seed", cfg.Seed).
		Bool("http", cfg.HTTPAddr != "").
		Msg("genius started")

	for {
		select {
		case ev := <-eventChan:
			if !handleIntent(machine.Process(ev), ctrl, display, sound, logger) {
				return nil
			}
		case cmd := <-commands:
			cmd.Execute(ctrl)
		case <-frameTicker.C:
		}

		ctrl.Tick(clock.Now())
		st := ctrl.State()
		router.DispatchAll(st)
		display.Draw(st)
	}
}

// handleIntent applies one input intent, returns false to quit
func handleIntent(in *input.Intent, ctrl *game.Controller, display *render.Display, sound *audio.SoundManager, logger zerolog.Logger) bool {
	if in == nil {
		return true
	}
	switch in.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		display.Resize(in.Width, in.Height)
	case input.IntentToggleMute:
		muted := sound.ToggleMute()
		logger.Debug().Bool("muted", muted).Msg("sound toggled")
	default:
		input.Apply(in, ctrl)
	}
	return true
}
