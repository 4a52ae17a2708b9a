//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios = unix.TCGETS

	// TCSETSF drains pending output and discards unread input before
	// applying, matching tcsetattr with TCSAFLUSH.
	ioctlWriteTermios = unix.TCSETSF
)
