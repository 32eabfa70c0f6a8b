package microlens

import (
	"fmt"
	"image"
	"image/png"
	"math"
)

// SavePNG writes img as a losslessly compressed PNG.
func SavePNG(img image.Image, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePNGSequence writes one PNG per frame as prefix_NNN.png, zero-padded to
// the width of the last index.
func SavePNGSequence(frames []*image.NRGBA, prefix string) error {
	width := 1
	if len(frames) > 1 {
		width = int(math.Log10(Real(len(frames)-1))) + 1
	}

	step := imax(1, len(frames)/10)
	for k, img := range frames {
		if k%step == 0 {
			Logger().Info("writing png", "progress", fmt.Sprintf("%.2f%%", Real(k+1)*100/Real(len(frames))))
		}
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		if err := SavePNG(img, full); err != nil {
			return err
		}
	}
	return nil
}
