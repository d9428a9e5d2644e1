package model

type NoticeLevel string

const (
	NoticeLevelInfo    NoticeLevel = "info"
	NoticeLevelError   NoticeLevel = "error"
	NoticeLevelSuccess NoticeLevel = "success"
)

// Notice is a dashboard banner shown to operators
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}
