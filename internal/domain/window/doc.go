// Package window implements the desktop window manager.
//
// A Manager owns the open windows of one desktop session together with the
// start menu visibility flag. It is the only place window state changes:
// callers open, close, focus, minimize, maximize and move windows through
// its methods and read copies of the state back.
//
// Stacking:
//   - Every window carries a ZIndex; higher values draw on top.
//   - A session-wide counter starts at InitialZIndex and is stamped onto a
//     window whenever it is created, focused, restored from minimized, or
//     maximized/unmaximized. The counter never decreases.
//   - The focused window is the non-minimized window with the highest ZIndex.
//
// Instances:
//   - Opening an application without a payload reuses its existing window,
//     bringing it to the front and restoring it if minimized.
//   - Opening with a payload always creates a new window, so file viewers can
//     show several documents at once.
//
// Operations on unknown application or window identifiers are silent no-ops.
// UI events routinely race with closes (a drag-stop arriving after the close
// button), so none of them are errors. Each method reports whether it applied.
//
// Observers registered with Subscribe receive a Change for every mutation,
// after the manager lock is released.
package window
