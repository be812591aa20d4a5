package inertia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMailboxLastWriterWins(t *testing.T) {
	var m Mailbox
	if _, ok := m.Take(); ok {
		t.Fatalf("empty mailbox returned an offset")
	}

	m.Put(PendingOffset{Primary: Offset{Position: mgl32.Vec3{1, 0, 0}}})
	m.Put(PendingOffset{Primary: Offset{Position: mgl32.Vec3{2, 0, 0}}})

	p, ok := m.Take()
	if !ok || p.Primary.Position.X() != 2 {
		t.Fatalf("expected the latest offset, got %+v", p)
	}
	if _, ok := m.Take(); ok || m.HasData() {
		t.Fatalf("an offset must only be taken once")
	}
}
