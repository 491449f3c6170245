package show

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"

	// 图片步骤支持的格式
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// imageLoader decodes images from fsys, or from the working directory when
// fsys is nil.
func imageLoader(fsys fs.FS) func(string) (image.Image, error) {
	return func(name string) (image.Image, error) {
		var (
			f   fs.File
			err error
		)
		if fsys == nil {
			f, err = os.Open(name)
		} else {
			f, err = fsys.Open(path.Clean(name))
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return img, nil
	}
}
