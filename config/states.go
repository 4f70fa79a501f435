package config

// RunStateID is the phase of a single flight
type RunStateID int

const (
	RunReady RunStateID = iota // waiting for the first flap
	RunPlaying
	RunPaused
	RunOver
)

func (s RunStateID) String() string {
	switch s {
	case RunReady:
		return "ready"
	case RunPlaying:
		return "playing"
	case RunPaused:
		return "paused"
	case RunOver:
		return "over"
	}
	return "unknown"
}

// PowerUpKind identifies a collectible power-up
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpSlowTime
	PowerUpDoubleScore
	PowerUpMagnet
	PowerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "Shield"
	case PowerUpSlowTime:
		return "Slow Time"
	case PowerUpDoubleScore:
		return "Double Score"
	case PowerUpMagnet:
		return "Magnet"
	}
	return "Unknown"
}
