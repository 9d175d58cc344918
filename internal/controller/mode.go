package controller

// Mode is the single active interaction context. Exactly one mode owns key
// events at any time; "two modals open" is unrepresentable.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeSearching
	ModeDetail
	ModeDeleteConfirm
	ModePriorityChange
	ModeMainMenu
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeSearching:
		return "searching"
	case ModeDetail:
		return "detail"
	case ModeDeleteConfirm:
		return "delete-confirm"
	case ModePriorityChange:
		return "priority-change"
	case ModeMainMenu:
		return "main-menu"
	default:
		return "unknown"
	}
}

// IsOverlay reports whether the mode is drawn on top of the browse list.
func (m Mode) IsOverlay() bool {
	switch m {
	case ModeDetail, ModeDeleteConfirm, ModePriorityChange, ModeMainMenu:
		return true
	default:
		return false
	}
}
