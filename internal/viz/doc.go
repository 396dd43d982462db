// Package viz provides terminal visualization of sampled vector fields.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker that launches a live view
//   - [Model]: live quiver plot advancing time at a fixed frame rate
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Camera]: rotating perspective projection for 3D fields
//
// # Key Bindings
//
//	Space - Pause/Resume the clock
//	R     - Reset time
//	E     - Edit the expression; a rejected edit keeps the current field
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]/   - Scrub through sampled frames
//
// # Recording
//
// Recordings are rasterized through the export package and saved to
// fieldviz.gif in the current directory.
package viz
