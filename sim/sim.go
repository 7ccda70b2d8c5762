package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

type Options struct {
	Arena string
	// Seed drives wander and rush jitter. Zero seeds from the clock.
	Seed int64
	// Interactive adds device input. Headless runs leave the player idle.
	Interactive bool
	Logger      *zap.Logger
}

// Sim owns a world populated from an arena prefab and the fixed system
// pipeline that steps it.
type Sim struct {
	World *ecs.World
	Arena *entity.Arena

	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	selection *system.AISelectionSystem
	watcher   *prefabs.Watcher
	logger    *zap.Logger
	ticks     int
}

func New(opts Options) (*Sim, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	arenaName := opts.Arena
	if arenaName == "" {
		arenaName = "arena"
	}
	spec, err := prefabs.LoadArenaSpec(arenaName)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	w := ecs.NewWorld()
	arena, err := entity.BuildArena(w, spec)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{
		World:     w,
		Arena:     arena,
		physics:   system.NewPhysicsSystem(),
		selection: system.NewAISelectionSystem(logger.Named("ai")),
		logger:    logger,
	}

	var input ecs.System
	if opts.Interactive {
		input = system.NewInputSystem()
	}
	s.scheduler = ecs.NewScheduler(
		input,
		system.NewPlayerControllerSystem(),
		system.NewCooldownSystem(),
		system.NewSteerTimerSystem(),
		system.NewSteerBehaviorSystem(rng),
		system.NewSteerDecideSystem(),
		system.NewRoutineInitSystem(logger.Named("routine")),
		system.NewFollowRoutineSystem(),
		system.NewRushRoutineSystem(rng),
		system.NewAttackRoutineSystem(),
		s.selection,
		system.NewDashSystem(),
		system.NewMovementSystem(),
		system.NewWiggleSystem(),
		system.NewProjectileSystem(logger.Named("projectile")),
		s.physics,
		system.NewHealthSystem(logger.Named("health")),
		system.NewTTLSystem(),
	)

	for _, name := range s.archetypes() {
		if err := s.registerPolicy(name); err != nil {
			return nil, fmt.Errorf("sim: %w", err)
		}
	}

	logger.Info("arena ready",
		zap.String("arena", spec.Name),
		zap.Int("enemies", len(arena.Enemies)),
		zap.Int("obstacles", len(arena.Walls)),
		zap.Int64("seed", seed))
	return s, nil
}

// Step advances the world by one tick after applying any pending prefab
// changes.
func (s *Sim) Step(dt time.Duration) {
	s.drainChanges()
	s.scheduler.Step(s.World, dt)
	s.ticks++
}

func (s *Sim) Ticks() int {
	return s.ticks
}

func (s *Sim) Physics() *system.PhysicsSystem {
	return s.physics
}

func (s *Sim) Selection() *system.AISelectionSystem {
	return s.selection
}

// PlayerPosition reports false once the player is dead.
func (s *Sim) PlayerPosition() (cp.Vector, bool) {
	tr, ok := ecs.Get(s.World, s.Arena.Player, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Position(), true
}

// Watch starts hot reloading prefabs from the disk root.
func (s *Sim) Watch() error {
	if s.watcher != nil {
		return nil
	}
	if prefabs.DiskRoot() == "" {
		return errors.New("sim: no prefab directory to watch")
	}
	watcher, err := prefabs.WatchDiskRoot()
	if err != nil {
		return fmt.Errorf("sim: watch prefabs: %w", err)
	}
	s.watcher = watcher
	s.logger.Info("watching prefabs", zap.String("dir", prefabs.DiskRoot()))
	return nil
}

func (s *Sim) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *Sim) drainChanges() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if err := s.Apply(change); err != nil {
				s.logger.Warn("prefab reload failed", zap.String("file", change.Name), zap.Error(err))
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				s.watcher = nil
				return
			}
			s.logger.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}
