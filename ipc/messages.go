package ipc

// Message types assigned by Classify. The engine sends untyped JSON lines;
// the type is inferred from the payload.
const (
	TypeConfig      = "config"
	TypeTurn        = "turn"
	TypeActionFrame = "action_frame"
	TypeEndGame     = "end_game"
)

// turnInfo[0] values.
const (
	phaseDeploy      = 0
	phaseActionFrame = 1
	phaseEndGame     = 2
)

// probe is the minimum decoded from every line to classify it.
type probe struct {
	UnitInformation []any `json:"unitInformation"`
	TurnInfo        []int `json:"turnInfo"`
}
