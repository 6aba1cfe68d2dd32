package game

import (
	"math"
	"strings"
	"testing"
	"time"

	"raycaster/internal/raycast"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"
)

func TestMouseTracker(t *testing.T) {
	var m mouseTracker

	if dx, dy := m.delta(100, 50); dx != 0 || dy != 0 {
		t.Errorf("first delta = (%v,%v), want (0,0)", dx, dy)
	}
	if dx, dy := m.delta(110, 40); dx != 10 || dy != -10 {
		t.Errorf("delta = (%v,%v), want (10,-10)", dx, dy)
	}

	m.reset()
	if dx, dy := m.delta(900, 900); dx != 0 || dy != 0 {
		t.Errorf("delta after reset = (%v,%v), want (0,0)", dx, dy)
	}
	if dx, dy := m.delta(899, 905); dx != -1 || dy != 5 {
		t.Errorf("delta = (%v,%v), want (-1,5)", dx, dy)
	}
}

func TestOverlayLayout(t *testing.T) {
	g := world.DefaultGrid(64)

	tests := []struct {
		name          string
		width, height int
		want          float64
	}{
		{"original window", 1024, 512, 1},
		{"wide window is height bound", 2048, 256, 0.5},
		{"narrow window is width bound", 512, 1024, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlayLayout(tt.width, tt.height, g); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("overlayLayout = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewRect(t *testing.T) {
	x, y, w, h := viewRect(1024, 512)
	if x != 512 || y != 0 || w != 512 || h != 512 {
		t.Errorf("viewRect = (%v,%v,%v,%v), want (512,0,512,512)", x, y, w, h)
	}
}

func TestRayColor(t *testing.T) {
	if rayColor(raycast.AxisVertical) != rayColorVertical {
		t.Error("vertical hits should use the light trace color")
	}
	if rayColor(raycast.AxisHorizontal) != rayColorHorizontal {
		t.Error("horizontal hits should use the dark trace color")
	}
}

func TestHUDLines(t *testing.T) {
	m := monitoring.FrameMetrics{RaycastTime: 1500 * time.Microsecond, PaintTime: 250 * time.Microsecond, MemoryUsageMB: 12}

	lines := hudLines(59.6, 1.0/60, false, m, nil)
	want := []string{"FPS: 60", "DELTA: 16.67 ms", "CAST: 1.50ms PAINT: 0.25ms", "MEM: 12MB"}
	if len(lines) != len(want)+1 {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want)+1, lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(lines[len(lines)-1], "grab") {
		t.Errorf("expected grab hint, got %q", lines[len(lines)-1])
	}

	lines = hudLines(60, 1.0/60, true, m, nil)
	if !strings.Contains(lines[len(lines)-1], "release") {
		t.Errorf("expected release hint, got %q", lines[len(lines)-1])
	}
}

func TestHUDLinesShowAlerts(t *testing.T) {
	pm := monitoring.NewPerformanceMonitor()
	timer := pm.StartRaycast()
	time.Sleep(10 * time.Millisecond)
	timer.Stop()

	alerts := pm.CheckPerformanceAlerts()
	if len(alerts) == 0 {
		t.Fatal("expected a slow cast alert after a 10ms cast")
	}

	lines := hudLines(60, 1.0/60, false, pm.GetCurrentMetrics(), alerts)
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "! Ray casting takes longer than 8ms") {
			found = true
		}
	}
	if !found {
		t.Errorf("alert missing from HUD lines %q", lines)
	}
}
