package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openpark/server/internal/config"
	"github.com/openpark/server/internal/data"
	"github.com/openpark/server/internal/persist"
	"github.com/openpark/server/internal/save"
	"github.com/openpark/server/internal/scripting"
	"github.com/openpark/server/internal/sim"
	"github.com/openpark/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            OpenPark  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      amusement park simulation core       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mpark:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Collaborator stubs ─────────────────────────────────────────────

// noRides is the ride lookup for a park without a ride subsystem yet.
type noRides struct{}

func (noRides) ByIndex(uint16) world.Ride { return nil }

// scenario adapts the config (plus optional Lua hooks) to world.Scenario.
type scenario struct {
	cfg   config.ScenarioConfig
	hooks *scripting.Engine
}

func (s *scenario) MaxGuests() int { return s.cfg.MaxGuests }

func (s *scenario) SpawnProbability(resolution int) int {
	if s.hooks != nil {
		if v, ok := s.hooks.SpawnProbability(resolution); ok {
			return v
		}
	}
	v := s.cfg.SpawnProbability * resolution / 1024
	if v > resolution {
		v = resolution
	}
	return v
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("OPENPARK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Optional Postgres slot storage
	var saveRepo *persist.SavegameRepo
	if cfg.Database.Enabled {
		printSection("database")
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		saveRepo = persist.NewSavegameRepo(db)
		fmt.Println()
	}

	// 4. Load data tables and scenario hooks
	printSection("data")

	roles := world.DefaultRoleTable()
	if cfg.Staff.RolesFile != "" {
		roles, err = data.LoadStaffRoles(cfg.Staff.RolesFile)
		if err != nil {
			return fmt.Errorf("load staff roles: %w", err)
		}
	}
	printStat("staff roles", 4)

	var hooks *scripting.Engine
	if cfg.Scenario.ScriptDir != "" {
		hooks, err = scripting.NewEngine(cfg.Scenario.ScriptDir, log)
		if err != nil {
			return fmt.Errorf("scenario scripts: %w", err)
		}
		defer hooks.Close()
		printOK("scenario hooks loaded")
	}

	// 5. Build the world: map, collaborators, population, roster
	parkMap := world.NewGridMap(cfg.Map.XSize, cfg.Map.YSize)
	// Entrance path: one edge tile plus a short walkway into the park.
	parkMap.SetPath(2, 0)
	parkMap.SetPath(2, 1)
	parkMap.SetPath(2, 2)

	seed := cfg.Simulation.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wctx := &world.Context{
		Map:      parkMap,
		Scenario: &scenario{cfg: cfg.Scenario, hooks: hooks},
		Inbox:    &world.LogInbox{Log: log},
		Finances: &world.LogFinances{Log: log},
		Rides:    noRides{},
		Log:      log,
	}
	guests := world.NewGuests(wctx, world.NewRandom(seed),
		cfg.Simulation.GuestBlockSize, cfg.Simulation.TicksPerDay)
	staff := world.NewStaff(wctx, roles)

	printStat("guest slots", cfg.Simulation.GuestBlockSize)
	fmt.Println()

	// 6. Resume from the active save slot if one exists
	savePath := filepath.Join(cfg.Save.Dir, cfg.Save.Slot+".sav")
	if err := loadGame(savePath, guests, staff); err == nil {
		printOK(fmt.Sprintf("resumed save slot %q", cfg.Save.Slot))
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load save: %w", err)
	}

	// 7. Start the heartbeat
	runner := sim.NewRunner(cfg.Simulation.TicksPerDay, cfg.Simulation.DaysPerMonth)
	runner.Register(guests)
	runner.Register(staff)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.FrameTime)
	defer ticker.Stop()

	printSection("park open")
	printReady(fmt.Sprintf("simulation running (frame: %s)", cfg.Simulation.FrameTime))
	fmt.Println()

	frameMS := int(cfg.Simulation.FrameTime.Milliseconds())
	saveCounter := 0
	for {
		select {
		case <-ticker.C:
			runner.Animate(frameMS)
			runner.Tick()

			if cfg.Save.AutosaveTicks > 0 {
				saveCounter++
				if saveCounter >= cfg.Save.AutosaveTicks {
					saveCounter = 0
					saveGame(context.Background(), savePath, guests, staff, saveRepo, cfg.Save.Slot, log)
				}
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			saveGame(context.Background(), savePath, guests, staff, saveRepo, cfg.Save.Slot, log)
			log.Info("park closed",
				zap.Int("guests", guests.CountActiveGuests()),
				zap.Int("staff", staff.Count(world.PersonAny)))
			return nil
		}
	}
}

// saveGame serializes the population and roster to the save slot: always to
// disk, and to Postgres as well when slot storage is enabled.
func saveGame(ctx context.Context, path string, guests *world.Guests, staff *world.Staff,
	repo *persist.SavegameRepo, slot string, log *zap.Logger) {

	svr := save.NewSaver()
	guests.Save(svr)
	staff.Save(svr)
	body := svr.Bytes()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Error("autosave failed", zap.Error(err))
		return
	}
	if err := save.WriteFile(path, body); err != nil {
		log.Error("autosave failed", zap.Error(err))
		return
	}
	if repo != nil {
		if err := repo.Put(ctx, slot, save.Encode(body)); err != nil {
			log.Error("autosave to database failed", zap.Error(err))
		}
	}
	log.Info("game saved", zap.String("path", path), zap.Int("bytes", len(body)))
}

// loadGame restores the population and roster from a save file. The state
// objects must be freshly constructed or Uninitialized.
func loadGame(path string, guests *world.Guests, staff *world.Staff) error {
	ldr, err := save.ReadFile(path)
	if err != nil {
		return err
	}
	if err := guests.Load(ldr); err != nil {
		return err
	}
	return staff.Load(ldr)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
