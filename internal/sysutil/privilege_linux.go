//go:build linux

package sysutil

import "golang.org/x/sys/unix"

// IsRoot Netlink 监听通常需要 root 权限
func IsRoot() bool {
	return unix.Geteuid() == 0
}
