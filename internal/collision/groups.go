// Package collision declares which collider groups may touch each other.
//
//	| Group   | Bit | Collides with          | Packed     |
//	| :------ | :-- | :--------------------- | :--------- |
//	| Walls   | 0   | Object                 | 0x00010004 |
//	| Pointer | 1   | Object                 | 0x00020004 |
//	| Object  | 2   | Walls, Pointer, Object | 0x00040007 |
//
// This table is the only place group interactions are declared; colliders
// reference a Group, never raw bits.
package collision

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"
)

type Group int

const (
	Walls Group = iota
	Pointer
	Object
)

var groupNames = map[Group]string{
	Walls:   "walls",
	Pointer: "pointer",
	Object:  "object",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return fmt.Sprintf("group(%d)", int(g))
}

func (g Group) bit() uint16 {
	return 1 << uint(g)
}

// allowed lists the groups each group may collide with.
var allowed = map[Group][]Group{
	Walls:   {Object},
	Pointer: {Object},
	Object:  {Walls, Pointer, Object},
}

// Bitmask returns the membership and filter bits for g. Unknown groups
// belong nowhere and accept nothing.
func Bitmask(g Group) (membership, filter uint16) {
	peers, ok := allowed[g]
	if !ok {
		return 0, 0
	}
	for _, p := range peers {
		filter |= p.bit()
	}
	return g.bit(), filter
}

// Pack returns the engine convention: membership in the high 16 bits,
// filter in the low 16 bits.
func Pack(g Group) uint32 {
	membership, filter := Bitmask(g)
	return uint32(membership)<<16 | uint32(filter)
}

// Unpack splits a packed value into membership and filter bits.
func Unpack(packed uint32) (membership, filter uint16) {
	return uint16(packed >> 16), uint16(packed)
}

// Filter converts g into a chipmunk shape filter. Categories carry the
// membership bits and Mask the filter bits.
func Filter(g Group) cp.ShapeFilter {
	membership, filter := Bitmask(g)
	return cp.ShapeFilter{
		Categories: uint(membership),
		Mask:       uint(filter),
	}
}

// Collides reports whether colliders of groups a and b interact. Both
// sides must accept the other, the same rule the engine applies.
func Collides(a, b Group) bool {
	am, af := Bitmask(a)
	bm, bf := Bitmask(b)
	return am&bf != 0 && bm&af != 0
}

// Groups returns every declared group in bit order.
func Groups() []Group {
	return []Group{Walls, Pointer, Object}
}
