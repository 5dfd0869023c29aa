package telemetry

import (
	"crypto/sha256"
	"encoding/base64"
	"runtime"

	"github.com/amplitude/analytics-go/amplitude"
)

const (
	eventPrefix   = "PVE-VM-LISTER"
	deviceId      = "pve-vm-lister"
	anonymousUser = "anonymous"
)

// Action is what the user asked for.
type Action string

const (
	ActionListVms   Action = "LIST_VMS"
	ActionListNodes Action = "LIST_NODES"
	ActionGetVm     Action = "GET_VM"
)

// Mode is the surface the action came from.
type Mode string

const (
	ModeDataSource Mode = "DATA_SOURCE"
	ModeCli        Mode = "CLI"
)

type Event struct {
	Action     Action
	Mode       Mode
	UserId     string
	Properties map[string]interface{}
}

// NewEvent builds an event for the given api token id. The token id is only
// kept as a sha256 digest.
func NewEvent(action Action, mode Mode, tokenId string, properties map[string]interface{}) Event {
	props := map[string]interface{}{
		"os":           runtime.GOOS,
		"architecture": runtime.GOARCH,
	}
	for k, v := range properties {
		props[k] = v
	}
	if Version != "" {
		props["version"] = Version
	}

	return Event{
		Action:     action,
		Mode:       mode,
		UserId:     hashTokenId(tokenId),
		Properties: props,
	}
}

func (e Event) Type() string {
	return eventPrefix + "::" + string(e.Action) + "::" + string(e.Mode)
}

func (e Event) amplitudeEvent() amplitude.Event {
	userId := e.UserId
	if userId == "" {
		userId = anonymousUser
	}

	return amplitude.Event{
		EventType: e.Type(),
		EventOptions: amplitude.EventOptions{
			UserID:   userId,
			DeviceID: deviceId,
		},
		EventProperties: e.Properties,
	}
}

func hashTokenId(tokenId string) string {
	if tokenId == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(tokenId))
	return base64.StdEncoding.EncodeToString(sum[:])
}
