package weft

import "github.com/grindlemire/weft/internal/paint"

// DisplayList is an ordered list of drawing commands.
type DisplayList = paint.List

// DisplayItem is one drawing command.
type DisplayItem = paint.Item

// Op is the kind of a display item.
type Op = paint.Op

const (
	OpRect     = paint.OpRect
	OpBorder   = paint.OpBorder
	OpText     = paint.OpText
	OpPushClip = paint.OpPushClip
	OpPopClip  = paint.OpPopClip
	OpScroll   = paint.OpScroll
	OpOpacity  = paint.OpOpacity
)

// RGBA is an 8-bit colour with straight alpha, as painted.
type RGBA = paint.RGBA

// Recorder records the drawing of one node's DrawFunc.
type Recorder = paint.Recorder

// DecodeDisplayList decodes the output of Frame.Encode.
func DecodeDisplayList(data []byte) (*DisplayList, error) {
	return paint.Decode(data)
}
