// Package desktop implements the shell around a window manager: taskbar
// entries and click policy, start menu, desktop icons, the boot app and
// opening files from the file system.
//
// The shell reports errors (unknown file, no associated app) that the
// window manager itself silently ignores.
package desktop
