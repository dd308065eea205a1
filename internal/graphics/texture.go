package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/go-gl/gl/v4.5-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat is returned for channel counts other than 3 or 4
	// and for decoded images that are grayscale, 16-bit or CMYK.
	ErrUnsupportedFormat = errors.New("graphics: image format not supported")
	// ErrWrongSizedData is returned when raw pixel data does not hold
	// exactly width*height*channels bytes.
	ErrWrongSizedData = errors.New("graphics: texture data size does not match its dimensions")
)

// DecodeError wraps a failure to read or decode an image.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("graphics: decode image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Pixels is a decoded image as tightly packed 8-bit RGB or RGBA rows
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

// DecodePixels decodes any registered image format into 8-bit pixels.
// Opaque YCbCr images (JPEG, lossy WebP) keep three channels; everything
// else that carries 8-bit color is expanded to straight-alpha RGBA.
func DecodePixels(r io.Reader) (*Pixels, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img.(type) {
	case *image.YCbCr:
		data := make([]byte, 0, w*h*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				data = append(data, byte(cr>>8), byte(cg>>8), byte(cb>>8))
			}
		}
		return &Pixels{Width: w, Height: h, Channels: 3, Data: data}, nil
	case *image.RGBA, *image.NRGBA, *image.Paletted, *image.NYCbCrA:
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		return &Pixels{Width: w, Height: h, Channels: 4, Data: nrgba.Pix}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Texture represents an immutable 2D OpenGL texture
type Texture struct {
	id       uint32
	width    int
	height   int
	channels int
	label    string
	released bool
}

// NewTexture uploads raw 8-bit pixel rows. channels must be 3 (RGB) or 4
// (RGBA) and data must hold exactly width*height*channels bytes.
func NewTexture(width, height, channels int, data []byte, label string) (*Texture, error) {
	if width <= 0 || height <= 0 || width*height*channels != len(data) {
		return nil, ErrWrongSizedData
	}

	var internalFormat int32
	var format uint32
	switch channels {
	case 3:
		internalFormat, format = gl.RGB8, gl.RGB
	case 4:
		internalFormat, format = gl.RGBA8, gl.RGBA
	default:
		return nil, ErrUnsupportedFormat
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return nil, fmt.Errorf("create texture %q: %w", label, ErrCreation)
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	setLabel(gl.TEXTURE, id, label)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internalFormat,
		int32(width),
		int32(height),
		0,
		format,
		gl.UNSIGNED_BYTE,
		gl.Ptr(data),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	Logger().Debug("created texture", "id", id, "label", label, "width", width, "height", height, "channels", channels)
	return &Texture{id: id, width: width, height: height, channels: channels, label: label}, nil
}

// LoadTextureFromFile decodes the image at path and uploads it.
func LoadTextureFromFile(path, label string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	defer f.Close()

	return loadTexture(f, path, label)
}

// LoadTextureFromMemory decodes an encoded image held in memory and uploads it.
func LoadTextureFromMemory(data []byte, label string) (*Texture, error) {
	return loadTexture(bytes.NewReader(data), "<memory>", label)
}

func loadTexture(r io.Reader, source, label string) (*Texture, error) {
	px, err := DecodePixels(r)
	if errors.Is(err, ErrUnsupportedFormat) {
		return nil, err
	}
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	tex, err := NewTexture(px.Width, px.Height, px.Channels, px.Data, label)
	if err != nil {
		return nil, err
	}
	Logger().Info("loaded texture", "source", source, "label", label, "width", px.Width, "height", px.Height)
	return tex, nil
}

// Bind binds the texture to a texture unit
func (t *Texture) Bind(unit uint32) {
	gl.BindTextureUnit(unit, t.id)
}

// Unbind clears a texture unit
func (t *Texture) Unbind(unit uint32) {
	gl.BindTextureUnit(unit, 0)
}

func (t *Texture) ID() uint32       { return t.id }
func (t *Texture) Size() (int, int) { return t.width, t.height }
func (t *Texture) Channels() int    { return t.channels }
func (t *Texture) Label() string    { return t.label }

// Release deletes the GL texture. Calls after the first are no-ops.
func (t *Texture) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	gl.DeleteTextures(1, &t.id)
	Logger().Debug("released texture", "id", t.id, "label", t.label)
}
