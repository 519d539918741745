package collision

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestPack(t *testing.T) {
	tests := []struct {
		group Group
		want  uint32
	}{
		{Walls, 0x00010004},
		{Pointer, 0x00020004},
		{Object, 0x00040007},
	}

	for _, tt := range tests {
		t.Run(tt.group.String(), func(t *testing.T) {
			if got := Pack(tt.group); got != tt.want {
				t.Errorf("Pack(%s) = %#08x, want %#08x", tt.group, got, tt.want)
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	g := NewWithT(t)
	for _, group := range Groups() {
		m, f := Unpack(Pack(group))
		wm, wf := Bitmask(group)
		g.Expect(m).To(Equal(wm))
		g.Expect(f).To(Equal(wf))
	}
}

func TestCollides(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Collides(Walls, Pointer)).To(BeFalse())
	g.Expect(Collides(Pointer, Walls)).To(BeFalse())
	g.Expect(Collides(Walls, Walls)).To(BeFalse())
	g.Expect(Collides(Pointer, Pointer)).To(BeFalse())

	g.Expect(Collides(Walls, Object)).To(BeTrue())
	g.Expect(Collides(Pointer, Object)).To(BeTrue())
	g.Expect(Collides(Object, Object)).To(BeTrue())
	g.Expect(Collides(Object, Walls)).To(BeTrue())
}

func TestFilterMatchesEngine(t *testing.T) {
	for _, a := range Groups() {
		for _, b := range Groups() {
			rejected := Filter(a).Reject(Filter(b))
			if rejected == Collides(a, b) {
				t.Errorf("%s vs %s: engine reject=%v, policy collides=%v", a, b, rejected, Collides(a, b))
			}
		}
	}
}

func TestUnknownGroup(t *testing.T) {
	g := NewWithT(t)
	unknown := Group(9)

	m, f := Bitmask(unknown)
	g.Expect(m).To(BeZero())
	g.Expect(f).To(BeZero())
	g.Expect(Collides(unknown, Object)).To(BeFalse())
	g.Expect(unknown.String()).To(Equal("group(9)"))
}
