package drive

import (
	"drivecode-go/bus"
	"drivecode-go/types"
)

// drive/state            retained types.DriveState
// drive/status/<kind>    retained types.CapabilityStatus
// drive/event/<tag>      non-retained types.ButtonEvent (accepted presses)

func topicState() bus.Topic { return bus.T("drive", "state") }

func topicStatus(k types.Kind) bus.Topic { return bus.T("drive", "status", string(k)) }

func topicEvent(ev types.ButtonEvent) bus.Topic { return bus.T("drive", "event", ev.String()) }

// TopicAll matches every drive topic.
func TopicAll() bus.Topic { return bus.T("drive", "#") }

// TopicState is the retained state topic.
func TopicState() bus.Topic { return topicState() }

// TopicStatus is the retained bring-up status topic of a subsystem.
func TopicStatus(k types.Kind) bus.Topic { return topicStatus(k) }
