package sim

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSimRunsArena(t *testing.T) {
	s, err := New(Options{Arena: "arena", Seed: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	caster := s.Arena.Enemies[0]
	a, ok := ecs.Get(s.World, caster, component.ArchetypeComponent)
	require.True(t, ok)
	require.Equal(t, "caster", a.Name)

	for i := 0; i < 120; i++ {
		s.Step(time.Second / 60)
	}
	assert.Equal(t, 120, s.Ticks())
	assert.Greater(t, s.Physics().Bodies(), 0)

	if s.World.IsAlive(caster) {
		assert.True(t, ecs.Has(s.World, caster, component.RoutineComponent))
	}
}

func TestSimCasterClosesIn(t *testing.T) {
	s, err := New(Options{Arena: "arena", Seed: 7})
	require.NoError(t, err)

	caster := s.Arena.Enemies[0]
	start, _ := ecs.Get(s.World, caster, component.TransformComponent)
	startX := start.X

	seen := map[component.RoutineKind]bool{}
	for i := 0; i < 240 && s.World.IsAlive(caster); i++ {
		s.Step(time.Second / 60)
		if r, ok := ecs.Get(s.World, caster, component.RoutineComponent); ok {
			seen[r.Kind] = true
		}
	}

	assert.True(t, seen[component.RoutineRush] || seen[component.RoutineAttack], "caster left follow: %v", seen)
	if tr, ok := ecs.Get(s.World, caster, component.TransformComponent); ok {
		assert.Less(t, tr.X, startX)
	}
}

func TestSimApplyChanges(t *testing.T) {
	s, err := New(Options{Arena: "arena", Seed: 1})
	require.NoError(t, err)

	require.NoError(t, s.Apply(prefabs.Change{Kind: prefabs.ChangeScript, Name: "caster.tengo"}))
	require.NoError(t, s.Apply(prefabs.Change{Kind: prefabs.ChangeArchetype, Name: "caster.yaml"}))
	require.NoError(t, s.Apply(prefabs.Change{Kind: prefabs.ChangeArchetype, Name: "arena.yaml"}), "non-archetype specs are ignored")

	set, ok := ecs.Get(s.World, s.Arena.Enemies[0], component.RoutineSetComponent)
	require.True(t, ok)
	assert.Equal(t, 200.0, set.Follow.Distance)

	assert.Error(t, s.Apply(prefabs.Change{Kind: prefabs.ChangeKind(9)}))
}

func TestSimReloadSwapsPolicy(t *testing.T) {
	s, err := New(Options{Arena: "arena", Seed: 1})
	require.NoError(t, err)
	caster := s.Arena.Enemies[0]

	original, err := prefabs.Load("caster.yaml")
	require.NoError(t, err)

	root := prefabs.DiskRoot()
	dir := t.TempDir()
	prefabs.SetDiskRoot(dir)
	t.Cleanup(func() { prefabs.SetDiskRoot(root) })

	edit := func(data string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "caster.yaml"), []byte(data), 0o644))
		require.NoError(t, s.Apply(prefabs.Change{Kind: prefabs.ChangeArchetype, Name: "caster.yaml"}))
	}

	policy, ok := ecs.Get(s.World, caster, component.AIPolicyComponent)
	require.True(t, ok)
	require.Equal(t, "caster", policy.Name)
	require.IsType(t, &system.ScriptPolicy{}, s.Selection().Policy("caster"))

	band := strings.Replace(string(original), "policy: script", "policy: band", 1)
	band = strings.Replace(band, "    time: 0.1\n    distance: 200", "    time: 0.1\n    distance: 180", 1)
	require.NotEqual(t, string(original), band)
	edit(band)

	set, _ := ecs.Get(s.World, caster, component.RoutineSetComponent)
	assert.Equal(t, 180.0, set.Follow.Distance)
	assert.Equal(t, "", policy.Name)
	assert.IsType(t, system.BandPolicy{}, s.Selection().Policy("caster"), "the old script is unregistered")

	edit(string(original))
	assert.Equal(t, 200.0, set.Follow.Distance)
	assert.Equal(t, "caster", policy.Name)
	assert.IsType(t, &system.ScriptPolicy{}, s.Selection().Policy("caster"))
}

func TestSimStopsDrainingClosedWatcher(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, err := New(Options{Arena: "arena", Seed: 1, Logger: zap.New(core)})
	require.NoError(t, err)

	errs := make(chan error, 1)
	s.watcher = &prefabs.Watcher{Events: make(chan prefabs.Change), Errors: errs}

	errs <- errors.New("overflow")
	s.Step(time.Second / 60)
	require.NotNil(t, s.watcher)
	assert.Equal(t, 1, logs.FilterMessage("prefab watcher").Len())

	close(errs)
	s.Step(time.Second / 60)
	assert.Nil(t, s.watcher)
	assert.Equal(t, 2, s.Ticks())
}

func TestSimUnknownArena(t *testing.T) {
	_, err := New(Options{Arena: "nowhere"})
	assert.Error(t, err)
}
