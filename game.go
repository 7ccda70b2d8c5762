package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/config"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/sim"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int
	paused bool

	cfg          *config.Config
	logger       *zap.Logger
	sim          *sim.Sim
	render       *system.RenderSystem
	physicsDebug bool
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		logger: logger,
		render: system.NewRenderSystem(cfg.Game.Debug),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	if g.sim != nil {
		_ = g.sim.Close()
	}
	s, err := sim.New(sim.Options{
		Arena:       g.cfg.Game.Arena,
		Seed:        g.cfg.Game.Seed,
		Interactive: true,
		Logger:      g.logger,
	})
	if err != nil {
		return err
	}
	if g.cfg.Prefabs.Watch {
		if err := s.Watch(); err != nil {
			g.logger.Warn("hot reload disabled", zap.Error(err))
		}
	}
	g.sim = s
	return nil
}

func (g *Game) Update() error {
	g.frames++

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.render.Debug = !g.render.Debug
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.physicsDebug = !g.physicsDebug
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.reset(); err != nil {
			return fmt.Errorf("restart arena: %w", err)
		}
	}

	if g.paused {
		return nil
	}
	g.sim.Step(g.cfg.TickDelta())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.render.Draw(g.sim.World, screen)
	if g.physicsDebug {
		system.DrawPhysicsDebug(g.sim.Physics().Space(), screen)
	}

	g.render.DrawText(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 48, 48)
	if _, alive := g.sim.PlayerPosition(); !alive {
		g.render.DrawText(screen, "You died. Press R to restart.", common.ScreenWidth/2-100, common.ScreenHeight/2)
	} else if g.paused {
		g.render.DrawText(screen, "Paused", common.ScreenWidth/2-21, common.ScreenHeight/2)
	}
}

func (g *Game) Close() error {
	if g.sim == nil {
		return nil
	}
	return g.sim.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
