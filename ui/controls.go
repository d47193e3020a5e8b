package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the state the controls panel displays.
type ControlsState struct {
	Lines    bool
	Paused   bool
	Steps    int
	MinSteps int
	MaxSteps int
}

// ControlsAction reports what the user changed this frame.
type ControlsAction struct {
	ToggleLines bool
	TogglePause bool
	Steps       int // new steps per update, or 0 when unchanged
}

// ControlsPanel renders raygui buttons for the simulation toggles.
type ControlsPanel struct {
	width, buttonHeight, spacing float32
}

// NewControlsPanel creates a controls panel of the given width.
func NewControlsPanel(width float32) *ControlsPanel {
	return &ControlsPanel{width: width, buttonHeight: 30, spacing: 10}
}

// Draw renders the panel anchored to the top right of the screen.
func (c *ControlsPanel) Draw(screenWidth float32, s ControlsState) ControlsAction {
	var act ControlsAction

	x := screenWidth - c.width - c.spacing
	y := c.spacing

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.width, Height: c.buttonHeight}, toggleText(s.Lines, "Hide lines", "Show lines")) {
		act.ToggleLines = true
	}
	y += c.buttonHeight + c.spacing

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.width, Height: c.buttonHeight}, toggleText(s.Paused, "Resume", "Pause")) {
		act.TogglePause = true
	}
	y += c.buttonHeight + c.spacing

	steps := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: c.width, Height: 20},
		"", "",
		float32(s.Steps), float32(s.MinSteps), float32(s.MaxSteps),
	)
	if int(steps) != s.Steps {
		act.Steps = int(steps)
	}

	return act
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
