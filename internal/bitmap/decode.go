package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
)

var (
	// ErrRead marks an I/O failure opening or reading a texture source.
	ErrRead = errors.New("bitmap: read error")
	// ErrFormat marks content a decoder could not parse.
	ErrFormat = errors.New("bitmap: format error")
)

// Decoder turns one image container into a Bitmap. The linear flag tells
// the decoder the stored channels are already linear light.
type Decoder interface {
	Decode(source string, linear bool) (Bitmap, error)
}

// ImageDecoder adapts a stream decode function (image/png style) to the
// Decoder interface.
type ImageDecoder struct {
	Fn func(io.Reader) (image.Image, error)
}

func (d ImageDecoder) Decode(source string, linear bool) (Bitmap, error) {
	rc, err := Open(source)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrRead, source, err)
	}
	defer rc.Close()

	img, err := d.Fn(bufio.NewReader(rc))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s: %v", ErrRead, source, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, source, err)
	}
	return FromImage(img, linear), nil
}
