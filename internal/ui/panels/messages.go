package panels

// LogLineMsg is sent when the sink of tab Tab has new lines.
type LogLineMsg struct {
	Tab int
}

// GTimerExpiredMsg is sent when the gg double-tap window expires.
type GTimerExpiredMsg struct{}

// ClearFlashMsg signals the flash numbered Seq should be cleared. A newer
// flash is left alone.
type ClearFlashMsg struct {
	Seq int
}
