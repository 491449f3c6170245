package renderer

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将快照表的元数据（不含像素）输出为 JSON，便于调试。
func WriteDebugJSON(sheet *Sheet, path string) error {
	if sheet == nil {
		return nil
	}
	data, err := json.MarshalIndent(sheet, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
