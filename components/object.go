package components

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the collision space singleton
var Space = donburi.NewComponentType[resolv.Space]()

// Tween drives a looping offset such as a coin's bob
var Tween = donburi.NewComponentType[gween.Sequence]()
