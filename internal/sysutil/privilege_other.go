//go:build !linux

package sysutil

import "os"

func IsRoot() bool {
	return os.Geteuid() == 0
}
