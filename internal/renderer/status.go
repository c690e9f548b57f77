package renderer

import (
	"fmt"
	"image"

	"github.com/dshills/loupe/internal/renderer/backend"
	"github.com/dshills/loupe/internal/renderer/core"
)

// StatusHeight is the number of terminal rows used by the status line.
const StatusHeight = 1

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom line: program name, zoom, transform,
// mode and pointer on the left, the latest message on the right.
type StatusLine struct {
	name      string
	zoom      float64
	transform string
	mobile    bool
	pointer   image.Point

	message     string
	messageType MessageType
}

// NewStatusLine creates a status line labelled name.
func NewStatusLine(name string) *StatusLine {
	return &StatusLine{name: name, zoom: 1}
}

// SetZoom updates the displayed zoom factor.
func (s *StatusLine) SetZoom(zoom float64) { s.zoom = zoom }

// SetTransform updates the displayed transform name.
func (s *StatusLine) SetTransform(name string) { s.transform = name }

// SetMobile updates the displayed mode.
func (s *StatusLine) SetMobile(mobile bool) { s.mobile = mobile }

// SetPointer updates the displayed pointer position.
func (s *StatusLine) SetPointer(p image.Point) { s.pointer = p }

// SetMessage shows msg until replaced or cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes the message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Text returns the left-hand status text.
func (s *StatusLine) Text() string {
	mode := "fixed"
	if s.mobile {
		mode = "mobile"
	}
	return fmt.Sprintf(" %s │ zoom %.2f │ %s │ %s │ %d,%d ",
		s.name, s.zoom, s.transform, mode, s.pointer.X, s.pointer.Y)
}

// Render draws the status line at row across width columns.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	barStyle := core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	b.Fill(core.RectFromSize(row, 0, 1, width), core.Cell{Rune: ' ', Width: 1, Style: barStyle})

	col := putString(b, 0, row, core.Truncate(s.Text(), width, "…"), barStyle.Bold())

	if s.message == "" {
		return
	}

	var msgStyle core.Style
	switch s.messageType {
	case MessageError:
		msgStyle = barStyle.WithForeground(core.ColorFromRGB(255, 90, 90)).Bold()
	case MessageWarning:
		msgStyle = barStyle.WithForeground(core.ColorFromRGB(255, 220, 90))
	default:
		msgStyle = barStyle
	}

	room := width - col - 1
	if room <= 0 {
		return
	}
	msg := core.Truncate(s.message, room, "…")
	putString(b, width-core.StringWidth(msg)-1, row, msg, msgStyle)
}

// putString draws s from (col, row) and returns the column after it.
func putString(b backend.Backend, col, row int, s string, style core.Style) int {
	for _, r := range s {
		cell := core.NewStyledCell(r, style)
		if cell.Width == 0 {
			continue
		}
		b.SetCell(col, row, cell)
		col += cell.Width
	}
	return col
}
