package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

// runFlags are the command-line settings that are not part of the config file
type runFlags struct {
	configPath string
	out        string
}

func (rf *runFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&rf.configPath, "config", "config.json", "JSON configuration file")
	fs.StringVar(&rf.out, "out", "", "write the final generation as a .cells file (- for stdout)")
}

/*
parseSettings resolves the configuration in two passes over args.

The first pass only finds -config; the named file is loaded, then every flag is parsed again
on top of it so command-line values win. A missing default config.json falls back to the
defaults, a missing file named explicitly is an error.
*/
func parseSettings(args []string) (utils.Config, runFlags, error) {
	var (
		rf     runFlags
		config = utils.DefaultConfig()
		first  = flag.NewFlagSet("go-life", flag.ContinueOnError)
	)
	rf.bind(first)
	config.Bind(first)
	if err := first.Parse(args); err != nil {
		return config, rf, errors.Wrap(err, "[parseSettings] failed to parse flags")
	}

	explicit := false
	first.Visit(func(f *flag.Flag) {
		explicit = explicit || f.Name == "config"
	})

	loaded, err := utils.LoadConfig(rf.configPath)
	if err != nil {
		if explicit {
			return config, rf, err
		}
		fmt.Printf("Using default configuration (%v)\n", err)
		loaded = utils.DefaultConfig()
	}

	second := flag.NewFlagSet("go-life", flag.ContinueOnError)
	second.SetOutput(io.Discard)
	rf.bind(second)
	loaded.Bind(second)
	if err = second.Parse(args); err != nil {
		return loaded, rf, errors.Wrap(err, "[parseSettings] failed to parse flags")
	}
	return loaded, rf, nil
}

// initializeGame sets up the grid, controller and pattern library
func initializeGame(config utils.Config) (
	*sim.Controller,
	*pattern.Library,
	*utils.Stats,
	error,
) {
	library, err := pattern.OpenLibrary(config.PatternDir)
	if err != nil {
		return nil, nil, nil, err
	}
	if config.Pattern != "" {
		if err = library.Select(config.Pattern); err != nil {
			return nil, nil, nil, err
		}
	}

	grid := model.NewGridFromConfig(config)
	controller := sim.NewController(grid, config.StepInterval())

	p, err := loadPattern(library)
	if err != nil {
		return nil, nil, nil, err
	}
	placePattern(controller, p)

	return controller, library, utils.NewStats(), nil
}

// loadPattern loads the selected pattern, skipping files that fail to parse
func loadPattern(library *pattern.Library) (*pattern.Pattern, error) {
	for range library.Files() {
		p, err := library.Load()
		if err == nil {
			return p, nil
		}
		fmt.Printf("Skipping %s: %v\n", library.Selected(), err)
		library.Rotate(+1)
	}
	return nil, errors.New("[loadPattern] no pattern in the library could be parsed")
}

// placePattern replaces the grid with p, centered on the origin using its declared size
func placePattern(controller *sim.Controller, p *pattern.Pattern) {
	controller.Load(p.Translated(model.Coord{X: -p.Width / 2, Y: -p.Height / 2}))
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, controller *sim.Controller, library *pattern.Library) {
	fmt.Printf("Features: Memory Pool: %v, Parallel: %v (%d workers)\n",
		config.UseMemoryPool, config.UseParallel, config.WorkerCount())
	fmt.Printf("Pattern: %s | Initial living cells: %d | Step interval: %v\n",
		library.Selected(), controller.Grid().Population(), controller.Interval())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState records stats for the generation just produced
func updateGameState(controller *sim.Controller, lastGenTime time.Time, stats *utils.Stats) string {
	var (
		grid       = controller.Grid()
		population = grid.Population()
		boxSize    int
	)
	if bounds, ok := grid.Bounds(); ok {
		boxSize = bounds.Area()
	}
	stats.Update(controller.Generation(), population, boxSize, time.Since(lastGenTime))

	switch {
	case population == 0:
		return "Extinct"
	case controller.Stagnant():
		return "Stagnant"
	}
	return "Active"
}

// displayGameStatus shows the current game status
func displayGameStatus(status string, stats *utils.Stats) {
	fmt.Printf("Gen: %d | Living: %d | Bounding box: %d cells | Status: %s\n",
		stats.TotalGenerations, stats.Population, stats.BoundingBoxSize, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// checkStopConditions determines if the run should end
func checkStopConditions(population, stagnantCount, generation int, config utils.Config) (bool, string) {
	if population == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, fmt.Sprintf("maximum generations limit (%d)", config.MaxGenerations)
	}
	return false, ""
}

// writeSnapshot saves the live cells as a plaintext pattern; "-" writes to stdout
func writeSnapshot(path string, controller *sim.Controller, name string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "[writeSnapshot] failed to create file: %+v", path)
		}
		defer f.Close()
		w = f
	}

	p := pattern.FromCells(pattern.Stem(name), controller.Snapshot())
	p.Comments = []string{fmt.Sprintf("generation %d", controller.Generation())}
	return pattern.Write(w, p)
}
