package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	weaponLength    = 24.0
	healthBarHeight = 4.0
	contextMapScale = 30.0
)

// RenderSystem draws the arena with flat shapes. Debug adds steering context
// maps and routine labels.
type RenderSystem struct {
	Debug bool

	pixel *ebiten.Image
	face  ebtext.Face
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{
		Debug: debug,
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}

	ecs.ForEach2(w, component.ObstacleTagComponent, component.TransformComponent, func(e ecs.Entity, _ *component.ObstacleTag, tr *component.Transform) {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		r.drawBox(screen, *tr, body.Width, body.Height, tint(w, e, colornames.Dimgray), 1)
	})

	ecs.ForEach2(w, component.DashEffectComponent, component.TransformComponent, func(_ ecs.Entity, fx *component.DashEffect, tr *component.Transform) {
		r.drawBox(screen, *tr, common.SpriteDrawSize, common.SpriteDrawSize, colornames.Lightsteelblue, fx.Alpha)
	})

	characters := w.Query(component.CharacterComponent, component.TransformComponent)
	sort.Slice(characters, func(i, j int) bool { return characters[i] < characters[j] })
	for _, e := range characters {
		tr, _ := ecs.Get(w, e, component.TransformComponent)
		width, height := common.SpriteDrawSize, common.SpriteDrawSize
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Width > 0 && body.Height > 0 {
			width, height = body.Width, body.Height
		}
		r.drawBox(screen, *tr, width, height, tint(w, e, colornames.White), 1)
		r.drawWeapon(w, screen, e, *tr)
		r.drawHealth(w, screen, e, *tr, height)
		if r.Debug {
			r.drawSteering(w, screen, e, *tr)
			r.drawRoutine(w, screen, e, *tr, height)
		}
	}

	ecs.ForEach2(w, component.ProjectileTagComponent, component.TransformComponent, func(e ecs.Entity, _ *component.ProjectileTag, tr *component.Transform) {
		radius := 4.0
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Radius > 0 {
			radius = body.Radius
		}
		x, y := common.WorldToScreen(tr.Position())
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), tint(w, e, colornames.Orange), true)
	})
}

// drawBox draws a width x height rectangle centered and rotated on tr.
func (r *RenderSystem) drawBox(screen *ebiten.Image, tr component.Transform, width, height float64, c color.Color, alpha float64) {
	x, y := common.WorldToScreen(tr.Position())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(-width/2, -height/2)
	op.GeoM.Rotate(tr.Rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(r.pixel, op)
}

func (r *RenderSystem) drawWeapon(w *ecs.World, screen *ebiten.Image, e ecs.Entity, tr component.Transform) {
	weapon, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		return
	}
	base := 0.0
	if facing, ok := ecs.Get(w, e, component.FacingComponent); ok && facing.Left {
		base = math.Pi
	}
	angle := base + weapon.Rotation
	tip := tr.Position().Add(cp.ForAngle(angle).Mult(weaponLength))
	strokeLine(screen, tr.Position(), tip, 3, colornames.Silver)
}

func (r *RenderSystem) drawHealth(w *ecs.World, screen *ebiten.Image, e ecs.Entity, tr component.Transform, height float64) {
	health, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok || health.Max <= 0 {
		return
	}
	pct := common.Clamp(health.Current/health.Max, 0, 1)
	x, y := common.WorldToScreen(tr.Position())
	left := float32(x - common.SpriteDrawSize/2)
	top := float32(y - height/2 - 2*healthBarHeight)
	vector.DrawFilledRect(screen, left, top, common.SpriteDrawSize, healthBarHeight, colornames.Darkred, false)
	vector.DrawFilledRect(screen, left, top, float32(common.SpriteDrawSize*pct), healthBarHeight, colornames.Limegreen, false)
}

// drawSteering draws every chase bin in green, every avoid bin in red and the
// current heading in white.
func (r *RenderSystem) drawSteering(w *ecs.World, screen *ebiten.Image, e ecs.Entity, tr component.Transform) {
	ai, ok := ecs.Get(w, e, component.SteerAIComponent)
	if !ok || ai.Agent == nil {
		return
	}
	origin := tr.Position()
	chase, avoid := ai.Agent.Chase(), ai.Agent.Avoid()
	for i, v := range chase.Values() {
		if v > 0 {
			strokeLine(screen, origin, origin.Add(chase.Direction(i).Mult(v*contextMapScale)), 1, colornames.Lime)
		}
	}
	for i, v := range avoid.Values() {
		if v > 0 {
			strokeLine(screen, origin, origin.Add(avoid.Direction(i).Mult(v*contextMapScale)), 1, colornames.Red)
		}
	}
	if heading := ai.Agent.Previous(); heading != (cp.Vector{}) {
		strokeLine(screen, origin, origin.Add(heading.Mult(contextMapScale*1.5)), 2, colornames.White)
	}
}

func (r *RenderSystem) drawRoutine(w *ecs.World, screen *ebiten.Image, e ecs.Entity, tr component.Transform, height float64) {
	label := ""
	if routine, ok := ecs.Get(w, e, component.RoutineComponent); ok {
		label = routine.Kind.String()
		if routine.Attack != nil && routine.Kind == component.RoutineAttack {
			label += ":" + routine.Attack.Phase.String()
		}
	} else if ecs.Has(w, e, component.RoutineSetComponent) {
		label = component.RoutineNone.String()
	}
	if label == "" {
		return
	}
	x, y := common.WorldToScreen(tr.Position())
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x-common.SpriteDrawSize/2, y+height/2+2)
	op.ColorScale.ScaleWithColor(colornames.Yellow)
	ebtext.Draw(screen, label, r.face, op)
}

// DrawText prints a HUD line at screen position x, y.
func (r *RenderSystem) DrawText(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, s, r.face, op)
}

func tint(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if t, ok := ecs.Get(w, e, component.TintComponent); ok && t.Color != nil {
		return t.Color
	}
	return fallback
}
