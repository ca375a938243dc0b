// Package viz provides a terminal browser for graph datasets.
//
// The browser is a Bubble Tea program, so unlike the ambient scenes it does
// not drive the framebuffer or put the terminal into raw mode itself.
//
//   - [Browser]: node list and node detail views over a [graph.Graph]
//   - [Theme]: lipgloss colours derived from a scene palette
//
// # Key Bindings
//
//	j/k, ↑/↓ - Move the selection
//	Enter    - Open the selected node, or follow the selected link
//	Esc      - Go back
//	Tab      - Next dataset
//	T        - Cycle palettes
//	Q        - Quit
package viz
