// Package tui provides terminal user interface components for denbox.
//
// This package uses the Bubble Tea framework to create the interactive
// container picker behind `denbox pick`.
//
// # Container Picker
//
// The picker lists every denbox container and lets the user act on one:
//
//	result, err := tui.RunPicker(summaries)
//	switch result.Action {
//	case tui.ActionEnter:
//	    // Enter result.Container's project
//	case tui.ActionStop:
//	    // Stop result.Container
//	case tui.ActionRemove:
//	    // Remove result.Container
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists containers by project path with state and image
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Quick actions: Enter (enter), s (stop), r (remove), q (quit)
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
