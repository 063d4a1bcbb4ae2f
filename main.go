package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"dungeonbot/pkg/engine/terminal"
	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/config"
	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/dungeon"
	"dungeonbot/pkg/game/generator"
	"dungeonbot/pkg/game/logger"
	"dungeonbot/pkg/game/renderer"
	"dungeonbot/pkg/game/scan"
	"dungeonbot/pkg/game/state"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: search standard locations)")
	scanPath := flag.String("scan", "", "replay a recorded floor scan instead of generating one")
	seed := flag.Int64("seed", 0, "seed for the floor generator (default: current time)")
	size := flag.Int("size", 5, "generated floor size in rooms per side")
	walk := flag.String("walk", "", "comma separated walls to open and walk through from the start room, e.g. E,S,S")
	dump := flag.String("dump", "", "write the floor scan to this file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	initLocale(cfg)
	initColor(cfg)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		logger.WithError(log, err).Error("loading door catalog")
		os.Exit(1)
	}

	floor, err := loadFloor(*scanPath, catalog, *seed, *size, log)
	if err != nil {
		logger.WithError(log, err).Error("loading floor")
		os.Exit(1)
	}
	if *dump != "" {
		if err := dumpScan(floor, *dump); err != nil {
			logger.WithError(log, err).Error("writing floor scan")
			os.Exit(1)
		}
	}

	player := state.NewPlayer()
	floor.ApplyPlayer(player)

	dg := dungeon.New(doors.NewClassifier(catalog, doors.NewRules(player), log), log)
	if err := floor.Replay(dg, player); err != nil {
		logger.WithError(log, err).Error("replaying floor")
		os.Exit(1)
	}

	current := dg.Start()
	if current == nil {
		fmt.Println(gotext.Get("The floor is empty"))
		return
	}
	current = walkFrom(dg, current, *walk, log)

	overlay := renderer.NewOverlay(os.Stdout, terminal.GetWidth())
	overlay.RenderMap(dg)
	fmt.Println()
	overlay.RenderRooms(dg)
	fmt.Println()
	overlay.RenderFrontier(dg.Frontier(current.ID))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, _, err := config.LoadFromPath(path)
		return cfg, err
	}
	cfg, _, err := config.Load()
	return cfg, err
}

func initLocale(cfg *config.Config) {
	gotext.Configure(cfg.Locale.Dir, cfg.Locale.Language, cfg.Locale.Domain)
}

func initColor(cfg *config.Config) {
	switch cfg.Color {
	case config.ColorAlways:
		renderer.SetColor(true)
	case config.ColorNever:
		renderer.SetColor(false)
	default:
		renderer.SetColor(terminal.IsTerminal(os.Stdout))
	}
}

func loadCatalog(cfg *config.Config) (*doors.Catalog, error) {
	if cfg.Catalog == "" {
		return doors.DefaultCatalog(), nil
	}
	return doors.LoadCatalogFile(cfg.Catalog)
}

// loadFloor replays a recorded scan or generates a new floor
func loadFloor(path string, catalog *doors.Catalog, seed int64, size int, log *slog.Logger) (*scan.Scan, error) {
	if path != "" {
		return scan.Load(path)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generator.Default(catalog)
	log.Info("generating floor", "generator", gen.Name(), "seed", seed, "size", size)
	return gen.Generate(rand.New(rand.NewSource(seed)), size), nil
}

func dumpScan(s *scan.Scan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scan file: %w", err)
	}
	defer f.Close()
	return s.Write(f)
}

// walkFrom opens and walks through each listed wall in turn and returns the
// room it stopped in. It stops at the first door that cannot be passed.
func walkFrom(dg *dungeon.Dungeon, from *dungeon.Room, walk string, log *slog.Logger) *dungeon.Room {
	current := from
	if walk == "" {
		return current
	}
	for _, step := range strings.Split(walk, ",") {
		dir, ok := world.ParseDirection(strings.TrimSpace(step))
		if !ok {
			log.Warn("ignoring unknown wall", "wall", step)
			continue
		}
		if err := dg.OpenDoor(current.ID, dir); err != nil {
			logger.WithError(log, err).Warn("cannot open door", "room", current.Name(), "wall", dir)
			break
		}
		next, err := dg.Explore(current.ID, dir)
		if err != nil {
			logger.WithError(log, err).Warn("cannot walk through door", "room", current.Name(), "wall", dir)
			break
		}
		current = next
	}
	return current
}
