package microlens

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
)

// SaveAnimatedGIF writes one GIF frame per image.
// delay is in 100ths of a second (e.g., 5 => 20 fps).
func SaveAnimatedGIF(frames []*image.NRGBA, path string, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to write to %s", path)
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}

	step := imax(1, len(frames)/10)
	for k, img := range frames {
		if k%step == 0 {
			Logger().Info("encoding gif", "progress", fmt.Sprintf("%.2f%%", Real(k+1)*100/Real(len(frames))))
		}
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
