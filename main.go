package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	caches "github.com/tablerock/holdem/caching"
	"github.com/tablerock/holdem/game"
	"github.com/tablerock/holdem/gamescript"
	"github.com/tablerock/holdem/logging"
	"github.com/tablerock/holdem/poker"
	"github.com/tablerock/holdem/util"
)

var mainLogger = logging.GetZeroLogger("main::main", nil)

func main() {
	var scriptFile = flag.String("game-script", "", "plays the hands in a game script file")
	var caller = flag.String("caller", "", "render the final snapshot from this player's viewpoint")
	var verbose = flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *scriptFile == "" {
		mainLogger.Error().Msg("No game script specified. Use -game-script <file>.")
		os.Exit(1)
	}

	script, err := gamescript.ReadGameScript(*scriptFile)
	if err != nil {
		mainLogger.Error().Err(err).Msgf("Unable to read game script %s", *scriptFile)
		os.Exit(1)
	}

	manager, err := newManager()
	if err != nil {
		mainLogger.Error().Err(err).Msg("Unable to create table manager")
		os.Exit(1)
	}
	runner := gamescript.NewRunnerWithManager(script, manager)

	table, err := runner.Run()
	if err != nil {
		mainLogger.Error().Err(err).Msg("Script failed")
		os.Exit(1)
	}

	snapshot, err := table.ToJSON(*caller)
	if err != nil {
		mainLogger.Error().Err(err).Msg("Unable to serialize final table state")
		os.Exit(1)
	}
	fmt.Println(string(snapshot))
}

func newManager() (*game.Manager, error) {
	cache, err := caches.NewSnapshotCache(128)
	if err != nil {
		return nil, err
	}
	var states game.GameStateTracker
	var backlogs game.BacklogTracker
	switch mode := util.Environment.GetPersistMode(); mode {
	case "memory":
		states = game.NewMemoryGameStateTracker()
		backlogs = game.NewMemoryBacklogTracker()
	case "redis":
		addr := fmt.Sprintf("%s:%d", util.Environment.GetRedisHost(), util.Environment.GetRedisPort())
		pw := util.Environment.GetRedisPW()
		db := util.Environment.GetRedisDB()
		states = game.NewRedisGameStateTracker(addr, pw, db)
		backlogs = game.NewRedisBacklogTracker(addr, pw, db)
	default:
		return nil, fmt.Errorf("unsupported persist mode %s", mode)
	}
	return game.NewManager(poker.NewEvaluator(), states, backlogs, cache), nil
}
