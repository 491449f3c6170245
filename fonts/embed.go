package fonts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/result"
)

// DefaultName 是内置字体的文件名。
const DefaultName = "marquee-6x7.bdf"

//go:embed *.bdf
var fontFS embed.FS

// Load 返回字体文件的字节数据。以 "embed:" 开头或为空时读取内置字体，否则从磁盘读取。
func Load(path string) ([]byte, error) {
	if path == "" {
		path = "embed:" + DefaultName
	}
	if name, ok := strings.CutPrefix(path, "embed:"); ok {
		data, err := fontFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("读取内置字体 %s 失败: %w", name, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

// Open 读取并解析 BDF 字体。
func Open(path string) result.Result[*bdf.Font] {
	data, err := Load(path)
	if err != nil {
		return result.Err[*bdf.Font](err)
	}
	return bdf.Parse(bytes.NewReader(data))
}

// Default 解析内置字体。
func Default() *bdf.Font {
	return Open("").Must()
}
