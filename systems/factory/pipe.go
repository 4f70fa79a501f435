package factory

import (
	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	cfg "github.com/automoto/butterfly-flight/config"
	"github.com/automoto/butterfly-flight/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePipePair spawns a top and bottom pipe at x leaving a gap centered on
// gapY. The bottom pipe reaches down to the ground.
func CreatePipePair(ecs *ecs.ECS, x, gapY float64) (top, bottom *donburi.Entry) {
	w := cfg.Obstacles.PipeWidth
	half := cfg.Obstacles.PipeGap / 2
	groundY := float64(cfg.C.Height) - cfg.Obstacles.GroundHeight

	top = createPipe(ecs, x, 0, w, gapY-half, true)
	bottom = createPipe(ecs, x, gapY+half, w, groundY-(gapY+half), false)
	return top, bottom
}

func createPipe(ecs *ecs.ECS, x, y, w, h float64, isTop bool) *donburi.Entry {
	pipe := archetypes.Pipe.Spawn(ecs)

	obj := resolv.NewObject(x, y, w, h)
	obj.AddTags(tags.ResolvSolid, tags.ResolvPipe)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	addToSpace(ecs, pipe, obj)

	components.Pipe.SetValue(pipe, components.PipeData{Top: isTop})
	return pipe
}

// CreateGround spawns the static floor strip.
func CreateGround(ecs *ecs.ECS) *donburi.Entry {
	ground := archetypes.Ground.Spawn(ecs)

	h := cfg.Obstacles.GroundHeight
	w := float64(cfg.C.Width)
	obj := resolv.NewObject(0, float64(cfg.C.Height)-h, w, h)
	obj.AddTags(tags.ResolvSolid, tags.ResolvGround)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	addToSpace(ecs, ground, obj)

	return ground
}
