package events

import "strings"

var (
	nameToType = make(map[string]EventType, eventTypeCount)
	typeToName = make(map[EventType]string, eventTypeCount)
)

func init() {
	registerType("StateChanged", EventStateChanged)
	registerType("CellHighlight", EventCellHighlight)
	registerType("CellClear", EventCellClear)
	registerType("TapFeedback", EventTapFeedback)
	registerType("PlaybackComplete", EventPlaybackComplete)
	registerType("RoundSuccess", EventRoundSuccess)
	registerType("Failure", EventFailure)
}

// registerType maps a string name to an EventType
func registerType(name string, et EventType) {
	nameToType[strings.ToLower(name)] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) (string, bool) {
	name, ok := typeToName[et]
	return name, ok
}
