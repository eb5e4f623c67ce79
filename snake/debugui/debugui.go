// Package debugui provides a Dear ImGui inspector for live snake
// simulations. Hosts render it between their backend's frame calls as
// an overlay on top of their own drawing.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/serpent/snake"
)

// Inspector renders a live-inspection window for a simulation: state,
// counters, positions, the body segment table, a text view of the
// field, and a tick duration graph fed from runner stats.
type Inspector struct {
	historyTicks int
	tickHistory  []float32
	tickIndex    int
}

// NewInspector creates an inspector keeping the given number of tick
// durations for the graph.
func NewInspector(historyTicks int) *Inspector {
	return &Inspector{
		historyTicks: historyTicks,
		tickHistory:  make([]float32, historyTicks),
	}
}

// Render draws the inspector window. Call it once per frame between the
// backend's BeginFrame and EndFrame, passing the stats of the runner
// driving the simulation.
func (in *Inspector) Render(sim *snake.Simulation, stats snake.TickStats) {
	if !imgui.BeginV("Snake Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	in.tickHistory[in.tickIndex] = float32(stats.LastDuration.Seconds() * 1000.0)
	in.tickIndex = (in.tickIndex + 1) % in.historyTicks

	imgui.Text(fmt.Sprintf("State: %s", sim.State()))
	if sim.GameOver() {
		imgui.Text(fmt.Sprintf("Cause: %s", sim.Cause()))
	}
	imgui.Text(fmt.Sprintf("Ticks: %d", sim.Ticks()))
	imgui.Text(fmt.Sprintf("Score: %d", sim.Score()))
	imgui.Text(fmt.Sprintf("Head: %s  Direction: %s", sim.HeadPosition(), sim.Direction()))
	imgui.Text(fmt.Sprintf("Fruit: %s", sim.FruitPosition()))

	// Grown segments may transiently share a cell, so count distinct cells.
	cells := map[snake.Point]struct{}{sim.HeadPosition(): {}}
	for _, seg := range sim.Body() {
		cells[seg] = struct{}{}
	}
	w, h := sim.Config().CellCount()
	imgui.Text(fmt.Sprintf("Occupancy: %d of %d cells", len(cells), w*h))

	imgui.Separator()
	imgui.Text("Tick Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##ticktime", &in.tickHistory[0], int32(len(in.tickHistory)))
	imgui.Text(fmt.Sprintf("Avg: %s  Max: %s  Total Ticks: %d",
		stats.AvgDuration.Round(time.Microsecond),
		stats.MaxDuration.Round(time.Microsecond),
		stats.TickCount))

	if imgui.TreeNodeStr("Body Segments") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("BodySegmentsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Segment")
			imgui.TableSetupColumn("Position")
			imgui.TableHeadersRow()

			for i, seg := range sim.Body() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", i))
				imgui.TableNextColumn()
				imgui.Text(seg.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Field") {
		for _, row := range FieldRows(sim) {
			imgui.Text(row)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// WantCapture reports whether Dear ImGui currently consumes mouse or
// keyboard input. Hosts skip their own input handling while it does.
func WantCapture() (mouse, keyboard bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

// FrameTimer measures the wall-clock delta between frames, for hosts
// accumulating real time toward fixed simulation steps.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
