// Package scene contains the render layers driven by the loop package.
//
//   - [FieldScene]: full-screen noise field that reacts to the pointer or a
//     keyboard cursor, with an input diagnostics panel
//   - [SphereScene]: a graph dataset drawn over a subtle noise substrate,
//     alternating between a system view (focus and its children) and a
//     component view (parents, focus, children)
//
// Palettes pick 256-colour indices for both scenes.
//
// # Key Bindings (sphere)
//
//	Space - Toggle auto-cycling
//	←/→   - Previous/next subject (manual mode)
//	↑/↓   - Toggle system/component view (manual mode)
//	Tab   - Next dataset
//	1-9   - Jump to a subject in the sequence
package scene
