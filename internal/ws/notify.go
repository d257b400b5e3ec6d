package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ApplicationEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"application_id,omitempty"`
	MissionID     string `json:"mission_id"`
	Status        string `json:"status,omitempty"`
	Timestamp     string `json:"timestamp"`
}

const (
	EventApplicationProposed = "application_proposed"
	EventApplicationDecided  = "application_decided"
	EventContractReady       = "contract_ready"
)

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyApplication pushes a lifecycle event to one profile. Safe to call
// before any hub is installed.
func NotifyApplication(profileID uuid.UUID, eventType string, applicationID, missionID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil || profileID == uuid.Nil {
		return
	}

	evt := ApplicationEvent{
		Type:      eventType,
		MissionID: missionID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if applicationID != uuid.Nil {
		evt.ApplicationID = applicationID.String()
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Send(profileID, b)
}
