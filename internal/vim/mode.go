package vim

// Mode is the current modal state governing key interpretation.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Visual:
		return "visual"
	case VisualLine:
		return "visual-line"
	default:
		return "unknown"
	}
}
