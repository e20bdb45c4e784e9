package perform

// Action identifies a performable operation on the player.
type Action int

const (
	ActionNone Action = iota

	// Transport
	ActionPlayPause
	ActionPlay
	ActionStop
	ActionRetrigger

	// Navigation
	ActionNextOrder
	ActionPrevOrder
	ActionJumpOrder
	ActionJumpPattern
	ActionQueueOrder
	ActionQueuePattern
	ActionNextPattern
	ActionPrevPattern

	// Loop shaping
	ActionLoopTillRow
	ActionLoopHalve
	ActionLoopFull

	// Mixing
	ActionMuteChannel
	ActionSoloChannel
	ActionChannelVolume
	ActionMuteAll
	ActionUnmuteAll

	// Pitch
	ActionPitchUp
	ActionPitchDown
	ActionPitchSet

	// Triggers
	ActionTriggerPad
	ActionTriggerPhrase

	// Application
	ActionQuit
	ActionFilePrev
	ActionFileNext
	ActionFileLoad
)

var actionNames = map[Action]string{
	ActionNone:          "none",
	ActionPlayPause:     "play_pause",
	ActionPlay:          "play",
	ActionStop:          "stop",
	ActionRetrigger:     "retrigger",
	ActionNextOrder:     "next_order",
	ActionPrevOrder:     "prev_order",
	ActionJumpOrder:     "jump_order",
	ActionJumpPattern:   "jump_pattern",
	ActionQueueOrder:    "queue_order",
	ActionQueuePattern:  "queue_pattern",
	ActionNextPattern:   "next_pattern",
	ActionPrevPattern:   "prev_pattern",
	ActionLoopTillRow:   "loop_till_row",
	ActionLoopHalve:     "loop_halve",
	ActionLoopFull:      "loop_full",
	ActionMuteChannel:   "mute_channel",
	ActionSoloChannel:   "solo_channel",
	ActionChannelVolume: "channel_volume",
	ActionMuteAll:       "mute_all",
	ActionUnmuteAll:     "unmute_all",
	ActionPitchUp:       "pitch_up",
	ActionPitchDown:     "pitch_down",
	ActionPitchSet:      "pitch_set",
	ActionTriggerPad:    "trigger_pad",
	ActionTriggerPhrase: "trigger_phrase",
	ActionQuit:          "quit",
	ActionFilePrev:      "file_prev",
	ActionFileNext:      "file_next",
	ActionFileLoad:      "file_load",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionByName resolves a config-file action name. Returns ActionNone
// for unknown names.
func ActionByName(name string) (Action, bool) {
	a, ok := actionsByName[name]
	return a, ok
}

// Event is one resolved input occurrence headed for dispatch.
// Param is context-dependent (channel, order, pad or phrase index);
// Value carries continuous controller data (0-127).
type Event struct {
	Action Action
	Param  int
	Value  float64
}

// Origin tags where a dispatched event came from. Phrase-scripted
// events must not re-enter phrase triggering or performance
// auto-start; replayed events must never be re-recorded.
type Origin int

const (
	OriginUser Origin = iota
	OriginPlayback
	OriginPhrase
)

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginPlayback:
		return "playback"
	case OriginPhrase:
		return "phrase"
	}
	return "unknown"
}
