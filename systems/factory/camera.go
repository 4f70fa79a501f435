package factory

import (
	"github.com/automoto/butterfly-flight/archetypes"
	"github.com/automoto/butterfly-flight/components"
	"github.com/yohamta/donburi/ecs"
)

func CreateCamera(ecs *ecs.ECS) {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{})
}
