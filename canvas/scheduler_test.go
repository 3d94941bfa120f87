package canvas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/easel/scene"
)

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var ran []string
	s.Schedule(func() {
		ran = append(ran, "a")
		s.Schedule(func() { ran = append(ran, "late") })
	})
	cancel := s.Schedule(func() { ran = append(ran, "b") })
	s.Schedule(func() { ran = append(ran, "c") })
	cancel()

	if got := s.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	if got := s.Flush(); got != 2 {
		t.Errorf("Flush() = %d, want 2", got)
	}
	if len(ran) != 2 || ran[0] != "a" || ran[1] != "c" {
		t.Errorf("ran = %v", ran)
	}
	if got := s.Pending(); got != 1 {
		t.Errorf("callback scheduled during flush: Pending() = %d, want 1", got)
	}
	s.Flush()
	if ran[len(ran)-1] != "late" {
		t.Errorf("ran = %v", ran)
	}
}

func TestFrameLoop(t *testing.T) {
	loop := NewFrameLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- loop.Run(ctx) }()

	c, err := NewStatic(50, 50, WithScheduler(loop))
	if err != nil {
		t.Fatalf("NewStatic() = %v", err)
	}
	rendered := make(chan struct{}, 1)
	err = loop.Do(ctx, func() {
		c.On(EventAfterRender, func(*scene.Event) {
			select {
			case rendered <- struct{}{}:
			default:
			}
		})
		c.Add(redRect(0, 0, 10))
	})
	if err != nil {
		t.Fatalf("Do() = %v", err)
	}

	select {
	case <-rendered:
	case <-time.After(5 * time.Second):
		t.Fatal("no render within 5s")
	}

	var pending bool
	if err := loop.Do(ctx, func() { pending = c.RenderPending() }); err != nil {
		t.Fatalf("Do() = %v", err)
	}
	if pending {
		t.Error("render still pending after the frame")
	}

	cancel()
	if err := <-stopped; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if err := loop.Do(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Do() after stop = %v, want context.Canceled", err)
	}
}
