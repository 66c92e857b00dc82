package bot

import (
	"fmt"
	"math"

	"github.com/danmuck/mirbot/internal/protocol/packet"
)

// Direction is the eight-way facing used on the wire.
type Direction uint8

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

var directionNames = [...]string{"up", "up_right", "right", "down_right", "down", "down_left", "left", "up_left"}

var offsets = [...]packet.Point{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Offset is the one-tile step for d. Out-of-range values do not move.
func (d Direction) Offset() packet.Point {
	if int(d) < len(offsets) {
		return offsets[d]
	}
	return packet.Point{}
}

// Advance moves p n tiles towards d.
func Advance(p packet.Point, d Direction, n int32) packet.Point {
	off := d.Offset()
	return packet.Point{X: p.X + off.X*n, Y: p.Y + off.Y*n}
}

// Distance is the grid (Chebyshev) distance between a and b.
func Distance(a, b packet.Point) int32 {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// DirectionBetween picks the facing closest to the line from -> to. Equal
// points face Up.
func DirectionBetween(from, to packet.Point) Direction {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	if dx == 0 && dy == 0 {
		return Up
	}
	// atan2 is 0 facing right and grows clockwise in screen space.
	idx := int(math.Round((math.Atan2(dy, dx) + math.Pi/2) / (math.Pi / 4)))
	return Direction(((idx % 8) + 8) % 8)
}

// Adjacent reports whether b is within one tile of a, including a itself.
func Adjacent(a, b packet.Point) bool {
	return Distance(a, b) <= 1
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
