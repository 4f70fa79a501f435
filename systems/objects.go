package systems

import (
	"github.com/automoto/butterfly-flight/components"
	"github.com/automoto/butterfly-flight/sound"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/ecs"
)

func UpdateObjects(ecs *ecs.ECS) {
	for e := range components.Object.Iter(ecs.World) {
		obj := components.Object.Get(e)
		if obj.Space != nil {
			obj.Update()
		}
	}
}

// overlaps reports whether two objects' boxes intersect. resolv's Check only
// narrows candidates to shared cells.
func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// center returns the middle of obj as an audio-space position.
func center(obj *resolv.Object) sound.Vec2 {
	return sound.Vec2{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}
}
