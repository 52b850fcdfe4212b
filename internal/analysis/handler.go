package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

var ErrNotRegular = errors.New("handler is not a regular file")

// HandlerInfo 处理程序的预检结果, 仅用于启动日志
type HandlerInfo struct {
	Path        string
	Kind        string // "elf", "script", 或 filetype 识别出的后缀, 无法识别为 "unknown"
	Interpreter string // 脚本的 shebang 解释器
	Executable  bool
}

// InspectHandler 检查处理程序是否存在、可执行, 并识别文件类型
func InspectHandler(path string) (*HandlerInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	info := &HandlerInfo{
		Path:       path,
		Kind:       "unknown",
		Executable: st.Mode().Perm()&0o111 != 0,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer file.Close()

	// 读取文件头 (262 bytes 是 filetype 库建议的最佳长度)
	head := make([]byte, 262)
	n, err := io.ReadFull(file, head)
	if err != nil && n == 0 {
		// 空文件
		return info, nil
	}
	head = head[:n]

	if interp, ok := shebang(head); ok {
		info.Kind = "script"
		info.Interpreter = interp
		return info, nil
	}

	kind, _ := filetype.Match(head)
	if kind != filetype.Unknown {
		info.Kind = kind.Extension
	}
	return info, nil
}

// shebang 解析 "#!/bin/sh -e" 形式的首行, 返回解释器路径
func shebang(head []byte) (string, bool) {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return "", false
	}
	line := head[2:]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return "", true
	}
	return fields[0], true
}
