package scalehouse

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"
)

// Resources holds the render assets shared by every conversion: the three
// typefaces and the company mark. Load once, reuse across documents.
type Resources struct {
	FontRegular []byte
	FontBold    []byte
	FontMono    []byte
	Logo        image.Image
}

// Asset file names under the data directory.
const (
	fontRegularFile = "fonts/NotoSans-Regular.ttf"
	fontBoldFile    = "fonts/NotoSans-Bold.ttf"
	fontMonoFile    = "fonts/NotoSansMono-Regular.ttf"
	logoFile        = "logo.png"
)

// LoadResources reads the fonts and logo from dataDir. The font bytes are
// kept raw; parsing is deferred to the render device so a bad font file
// fails the conversion, not the load.
func LoadResources(dataDir string) (*Resources, error) {
	res := &Resources{}

	fonts := []struct {
		name string
		dst  *[]byte
	}{
		{fontRegularFile, &res.FontRegular},
		{fontBoldFile, &res.FontBold},
		{fontMonoFile, &res.FontMono},
	}
	for _, f := range fonts {
		path := filepath.Join(dataDir, filepath.FromSlash(f.name))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
		}
		*f.dst = data
	}

	path := filepath.Join(dataDir, logoFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLogoLoad, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLogoLoad, path, err)
	}
	res.Logo = img

	return res, nil
}
