package analysis

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// USB 接口类代码 (bInterfaceClass)
var interfaceClasses = map[string]string{
	"01": "audio",
	"02": "comm",
	"03": "hid",
	"07": "printer",
	"08": "storage",
	"09": "hub",
	"0a": "cdc-data",
	"0e": "video",
	"e0": "wireless",
	"ef": "misc",
	"ff": "vendor",
}

// InterfaceClasses 遍历 USB 设备根目录下的接口目录 (例如 1-1:1.0), 返回去重排序后的接口类名。
// 底座通常同时报告 hub, hid, audio 等多个接口。
func InterfaceClasses(usbRoot string) []string {
	if usbRoot == "" {
		return nil
	}
	files, err := os.ReadDir(usbRoot)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, f := range files {
		if !strings.Contains(f.Name(), ":") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(usbRoot, f.Name(), "bInterfaceClass"))
		if err != nil {
			continue
		}
		code := strings.ToLower(strings.TrimSpace(string(content)))
		name, ok := interfaceClasses[code]
		if !ok {
			name = "0x" + code
		}
		seen[name] = true
	}

	classes := make([]string, 0, len(seen))
	for name := range seen {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	return classes
}
