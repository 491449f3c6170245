// Package renderer 将动画过程中采集的帧快照导出为文件，例如 PDF 预览表。
package renderer

import (
	"image"
	"time"
)

// Snapshot 是某一帧的内容及其来源。
type Snapshot struct {
	Step  string        `json:"step"`
	Index int           `json:"index"` // 步骤序号
	Frame int           `json:"frame"` // 步骤内的帧序号，从 1 开始
	At    time.Duration `json:"at"`    // 相对播放开始的时间
	Image *image.RGBA   `json:"-"`
}

// Sheet 是一次导出的全部快照，每个快照占一页。
type Sheet struct {
	Title   string     `json:"title"`
	Subject string     `json:"subject,omitempty"`
	Author  string     `json:"author,omitempty"`
	Pages   []Snapshot `json:"pages"`
}

// Renderer 将快照表输出为最终文件。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(sheet *Sheet) ([]byte, error)
}
