// Command arenasim steps an arena without a window and reports how each
// agent's routines evolved.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/sim"
	"go.uber.org/zap"
)

func main() {
	arenaName := flag.String("arena", "arena", "arena prefab name")
	ticks := flag.Int("ticks", 600, "ticks to simulate")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	seed := flag.Int64("seed", 1, "random seed")
	prefabDir := flag.String("prefabs", "", "directory searched for prefabs before the embedded ones")
	verbose := flag.Bool("v", false, "log routine swaps")
	flag.Parse()

	if *tps <= 0 {
		log.Fatal("tps must be positive")
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	if *prefabDir != "" {
		prefabs.SetDiskRoot(*prefabDir)
	}

	s, err := sim.New(sim.Options{Arena: *arenaName, Seed: *seed, Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	stats := run(s, *ticks, time.Second/time.Duration(*tps))
	report(os.Stdout, stats)
}

type agentStats struct {
	entity    ecs.Entity
	archetype string
	alive     bool
	routines  map[component.RoutineKind]int
}

type runStats struct {
	ticks       int
	playerAlive bool
	player      cp.Vector
	agents      []agentStats
}

// run steps s and counts, per enemy, the ticks spent in each routine.
func run(s *sim.Sim, ticks int, dt time.Duration) runStats {
	agents := make([]agentStats, 0, len(s.Arena.Enemies))
	index := make(map[ecs.Entity]int, len(s.Arena.Enemies))
	for _, e := range s.Arena.Enemies {
		name := "?"
		if a, ok := ecs.Get(s.World, e, component.ArchetypeComponent); ok {
			name = a.Name
		}
		index[e] = len(agents)
		agents = append(agents, agentStats{entity: e, archetype: name, routines: make(map[component.RoutineKind]int)})
	}

	for i := 0; i < ticks; i++ {
		s.Step(dt)
		ecs.ForEach(s.World, component.RoutineComponent, func(e ecs.Entity, r *component.Routine) {
			if j, ok := index[e]; ok {
				agents[j].routines[r.Kind]++
			}
		})
	}

	for i := range agents {
		agents[i].alive = s.World.IsAlive(agents[i].entity)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].entity < agents[j].entity })

	stats := runStats{ticks: ticks, agents: agents}
	stats.player, stats.playerAlive = s.PlayerPosition()
	return stats
}

func report(out io.Writer, stats runStats) {
	fmt.Fprintf(out, "ticks: %d\n", stats.ticks)
	if stats.playerAlive {
		fmt.Fprintf(out, "player: alive at (%.1f, %.1f)\n", stats.player.X, stats.player.Y)
	} else {
		fmt.Fprintln(out, "player: dead")
	}

	for _, a := range stats.agents {
		status := "dead"
		if a.alive {
			status = "alive"
		}
		fmt.Fprintf(out, "%s %s %s", a.entity, a.archetype, status)
		for k := component.RoutineFollow; k <= component.RoutineAttack; k++ {
			if n := a.routines[k]; n > 0 {
				fmt.Fprintf(out, " %s=%d", k, n)
			}
		}
		fmt.Fprintln(out)
	}
}
