package components

import "github.com/yohamta/donburi"

// DebugData toggles the developer overlay
type DebugData struct {
	Visible bool
}

var Debug = donburi.NewComponentType[DebugData]()
