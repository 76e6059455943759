package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// frameRate is how often the loop ticks the controller, independent of the step interval
const frameRate = 16 * time.Millisecond

func main() {
	// Load configuration - flags override the file, defaults cover a missing config.json
	config, rf, err := parseSettings(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %+v\n", err)
		os.Exit(2)
	}

	controller, library, stats, err := initializeGame(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %+v\n", err)
		os.Exit(1)
	}
	displayGameInfo(config, controller, library)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	var (
		stagnantCount = 0
		lastFrameTime = time.Now()
		lastGenTime   = lastFrameTime
	)

	controller.ToggleRunning()

loop:
	for {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			break loop
		case now := <-ticker.C:
			elapsed := now.Sub(lastFrameTime)
			lastFrameTime = now

			if !controller.Tick(elapsed) {
				continue
			}

			status := updateGameState(controller, lastGenTime, stats)
			lastGenTime = now
			displayGameStatus(status, stats)

			// Update stagnation counter
			if controller.Stagnant() {
				stagnantCount++
			} else {
				stagnantCount = 0
			}

			if stop, reason := checkStopConditions(stats.Population, stagnantCount, controller.Generation(), config); stop {
				fmt.Printf("\n🏁 Stopping: %s\n", reason)
				break loop
			}
		}
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		controller.Generation(), stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)

	if rf.out != "" {
		if err = writeSnapshot(rf.out, controller, library.Selected()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save snapshot: %+v\n", err)
			os.Exit(1)
		}
	}
}
