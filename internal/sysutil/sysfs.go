package sysutil

import (
	"os"
	"path/filepath"
	"strings"
)

const unknown = "unknown"

// USBInfo 从 sysfs 读取的设备信息, 只用于日志
type USBInfo struct {
	Root      string // USB 设备根目录
	VendorID  string
	ProductID string
	Product   string
	Serial    string
}

// DescribeUSB 从 sysRoot+devPath 开始向上回溯, 找到 USB 物理设备根目录并读取属性。
// 设备拔出后 sysfs 目录已消失, 此时所有字段为 "unknown", 应改用 DescribeProduct。
func DescribeUSB(sysRoot, devPath string) USBInfo {
	usbRoot := FindUSBRoot(filepath.Join(sysRoot, devPath))
	return USBInfo{
		Root:      usbRoot,
		VendorID:  readAttr(filepath.Join(usbRoot, "idVendor")),
		ProductID: readAttr(filepath.Join(usbRoot, "idProduct")),
		Product:   readAttr(filepath.Join(usbRoot, "product")),
		Serial:    readAttr(filepath.Join(usbRoot, "serial")),
	}
}

// FindUSBRoot 递归向上查找包含 idVendor 的目录（即 USB Device 根目录）
func FindUSBRoot(path string) string {
	dir := path

	// 目录已不存在 (设备已拔出) 时不回溯, 否则会读到上层 hub 的属性
	if _, err := os.Stat(dir); err != nil {
		return path
	}

	// usb_device 事件本身就指向根目录
	if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
		return dir
	}

	// 向上回溯最多 10 层，通常 USB 设备在 sysfs 树的上层
	for i := 0; i < 10; i++ {
		dir = filepath.Dir(dir)
		if dir == "/" || dir == "." {
			break
		}
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			return dir
		}
	}
	// 如果找不到，返回原始路径，后续读取会得到 "unknown"
	return path
}

func readAttr(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return unknown
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return unknown
	}
	return v
}

// DescribeProduct 解析 uevent 的 PRODUCT 属性 (例如 "17ef/3082/1"),
// 用于 remove 事件, 此时 sysfs 中已读不到设备属性
func DescribeProduct(product string) USBInfo {
	info := USBInfo{VendorID: unknown, ProductID: unknown, Product: unknown, Serial: unknown}
	parts := strings.Split(product, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return info
	}
	info.VendorID = padHex(parts[0])
	info.ProductID = padHex(parts[1])
	return info
}

// padHex 补齐为 sysfs idVendor 的 4 位格式
func padHex(v string) string {
	v = strings.ToLower(v)
	for len(v) < 4 {
		v = "0" + v
	}
	return v
}
