package events

import (
	"time"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// RequestEvent is raised once per inbound page request before the response is generated
type RequestEvent struct {
	Path           string
	Roles          []string
	AcceptLanguage string
	At             time.Time
}

// Interruption replaces the normal response of a request
type Interruption struct {
	Status  int
	Headers map[string]string
	Body    []byte
	Reason  model.MaintenanceReason
}

// UpdateEvent is one half of a paired update notification
type UpdateEvent struct {
	Type    model.UpdateType
	Channel model.UpdateChannel
	Phase   model.UpdatePhase
	At      time.Time
}

// Default maintenance contexts of the host platform
const (
	ContextInstall = "install"
	ContextUpdate  = "update"
)
