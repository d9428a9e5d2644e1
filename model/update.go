package model

import "time"

// UpdateType tags an update notification coming from the host platform
type UpdateType string

const (
	UpdateTypePlugin      UpdateType = "plugin"
	UpdateTypeTheme       UpdateType = "theme"
	UpdateTypeCore        UpdateType = "core"
	UpdateTypeTranslation UpdateType = "translation"
)

func (t UpdateType) IsValid() bool {
	switch t {
	case UpdateTypePlugin, UpdateTypeTheme, UpdateTypeCore, UpdateTypeTranslation:
		return true
	}
	return false
}

func (t UpdateType) String() string {
	return string(t)
}

// UpdatePhase is the start/finish half of a paired notification
type UpdatePhase string

const (
	UpdatePhaseStart  UpdatePhase = "start"
	UpdatePhaseFinish UpdatePhase = "finish"
)

// UpdateChannel is the host hook the notification was raised on.
// Plugin and theme updates go through the installer, core updates through auto update.
type UpdateChannel string

const (
	UpdateChannelInstaller  UpdateChannel = "installer"
	UpdateChannelAutoUpdate UpdateChannel = "auto_update"
)

// UpdateState exists for the lifetime of one update transaction
type UpdateState struct {
	Updating  bool       `json:"updating"`
	Type      UpdateType `json:"type"`
	StartedAt time.Time  `json:"started_at"`
}

// UpdateNotification is the payload of POST /admin/updates/{start,finish}
type UpdateNotification struct {
	Type    UpdateType    `json:"type" form:"type"`
	Channel UpdateChannel `json:"channel" form:"channel"`
}
