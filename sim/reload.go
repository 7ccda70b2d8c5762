package sim

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

// Apply reloads whatever a prefab change touched. Script edits recompile the
// policies that use them; archetype edits also refresh the routine
// parameters and policy of live agents.
func (s *Sim) Apply(change prefabs.Change) error {
	switch change.Kind {
	case prefabs.ChangeScript:
		for _, name := range s.archetypes() {
			spec, err := prefabs.LoadArchetypeSpec(name)
			if err != nil {
				return err
			}
			if spec.Policy != "script" || filepath.Base(spec.Script) != change.Name {
				continue
			}
			if err := s.registerSpec(spec); err != nil {
				return err
			}
		}
		return nil
	case prefabs.ChangeArchetype:
		name := strings.TrimSuffix(strings.TrimSuffix(change.Name, ".yaml"), ".yml")
		if !s.hasArchetype(name) {
			return nil
		}
		spec, err := prefabs.LoadArchetypeSpec(name)
		if err != nil {
			return err
		}
		if err := s.registerSpec(spec); err != nil {
			return err
		}
		s.refreshAgents(spec)
		return nil
	}
	return fmt.Errorf("sim: unknown change kind %d", change.Kind)
}

func (s *Sim) registerPolicy(name string) error {
	spec, err := prefabs.LoadArchetypeSpec(name)
	if err != nil {
		return err
	}
	return s.registerSpec(spec)
}

func (s *Sim) registerSpec(spec *prefabs.ArchetypeSpec) error {
	if spec.Policy != "script" {
		s.selection.SetPolicy(spec.Name, nil)
		return nil
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return fmt.Errorf("%s: load script %s: %w", spec.Name, spec.Script, err)
	}
	policy, err := system.NewScriptPolicy(spec.Name, src, system.BandPolicy{}, s.logger.Named("policy"))
	if err != nil {
		return fmt.Errorf("%s: %w", spec.Name, err)
	}
	s.selection.SetPolicy(entity.PolicyName(spec), policy)
	s.logger.Info("policy loaded", zap.String("archetype", spec.Name), zap.String("script", spec.Script))
	return nil
}

// refreshAgents pushes an archetype's routine parameters and policy onto
// its live agents. Running routines finish with the values they started with.
func (s *Sim) refreshAgents(spec *prefabs.ArchetypeSpec) {
	ecs.ForEach(s.World, component.ArchetypeComponent, func(e ecs.Entity, a *component.Archetype) {
		if a.Name != spec.Name {
			return
		}
		if set, ok := ecs.Get(s.World, e, component.RoutineSetComponent); ok && spec.Routines != nil {
			*set = *entity.RoutineSet(spec.Routines)
		}
		if p, ok := ecs.Get(s.World, e, component.AIPolicyComponent); ok {
			p.Name = entity.PolicyName(spec)
		}
	})
}

// archetypes lists the archetype names present in the world.
func (s *Sim) archetypes() []string {
	seen := make(map[string]struct{})
	ecs.ForEach(s.World, component.ArchetypeComponent, func(_ ecs.Entity, a *component.Archetype) {
		seen[a.Name] = struct{}{}
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Sim) hasArchetype(name string) bool {
	for _, n := range s.archetypes() {
		if n == name {
			return true
		}
	}
	return false
}
