package mesh

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"
)

// Default view parameters, matching the gallery's framing.
const (
	DefaultElevation = 26.0
	DefaultAzimuth   = 35.0

	MinQualityScale = 0.3
	MaxQualityScale = 1.0
	MinRasterSize   = 64
)

// RenderOptions controls preview rendering.
type RenderOptions struct {
	DarkTheme bool
	Elevation float64 // degrees; 0 looks along the horizon
	Azimuth   float64 // degrees around the vertical axis
	Zoom      float64 // 1.0 fills the frame; >1 zooms in
	// Quality trades raster resolution for speed during interactive updates;
	// clamped to 0.3..1.0, 0 means full quality.
	Quality float64
}

// Palette holds the colours a preview is drawn with.
type Palette struct {
	Background color.RGBA
	Face       color.RGBA
	Edge       color.RGBA
}

// PreviewPalette returns the light or dark preview palette.
func PreviewPalette(dark bool) Palette {
	if dark {
		return Palette{
			Background: color.RGBA{R: 0x0f, G: 0x11, B: 0x15, A: 0xff},
			Face:       color.RGBA{R: 140, G: 204, B: 255, A: 255},
			Edge:       color.RGBA{R: 26, G: 51, B: 77, A: 255},
		}
	}
	return Palette{
		Background: color.RGBA{R: 0xf4, G: 0xf5, B: 0xf8, A: 0xff},
		Face:       color.RGBA{R: 38, G: 115, B: 217, A: 255},
		Edge:       color.RGBA{R: 0, G: 51, B: 102, A: 255},
	}
}

// RenderPreview rasterizes the mesh into a width x height image using an
// orthographic projection and painter's-algorithm depth ordering. Returns nil
// for empty meshes or non-positive dimensions.
func RenderPreview(m *Mesh, width, height int, opts RenderOptions) image.Image {
	if m.IsEmpty() || width <= 0 || height <= 0 {
		return nil
	}

	quality := opts.Quality
	if quality == 0 {
		quality = MaxQualityScale
	}
	quality = math.Min(MaxQualityScale, math.Max(MinQualityScale, quality))
	rasterW := maxInt(MinRasterSize, int(float64(width)*quality))
	rasterH := maxInt(MinRasterSize, int(float64(height)*quality))

	palette := PreviewPalette(opts.DarkTheme)
	img := image.NewRGBA(image.Rect(0, 0, rasterW, rasterH))
	draw.Draw(img, img.Bounds(), image.NewUniform(palette.Background), image.Point{}, draw.Src)

	elev := opts.Elevation
	azim := opts.Azimuth
	if elev == 0 && azim == 0 {
		elev, azim = DefaultElevation, DefaultAzimuth
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	center := m.Center()
	radius := m.Radius()
	scale := float64(minInt(rasterW, rasterH)) / (2 * radius) * zoom

	right, up, forward := viewBasis(elev, azim)
	light := forward.Add(up.Scale(0.6)).Add(right.Scale(0.3)).Normalize()

	type projected struct {
		x     [3]float64
		y     [3]float64
		depth float64
		shade float64
	}
	tris := make([]projected, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		var p projected
		for i, v := range []Vec3{tri.V0, tri.V1, tri.V2} {
			rel := v.Sub(center)
			p.x[i] = float64(rasterW)/2 + rel.Dot(right)*scale
			p.y[i] = float64(rasterH)/2 - rel.Dot(up)*scale
			p.depth += rel.Dot(forward)
		}
		p.depth /= 3
		normal := tri.Normal()
		p.shade = math.Abs(normal.Dot(light))
		tris = append(tris, p)
	}

	// Painter's algorithm: farthest facets first.
	sort.Slice(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })

	for _, p := range tris {
		c := shadeColour(palette.Face, p.shade)
		fillTriangle(img, p.x, p.y, c)
	}

	if rasterW == width && rasterH == height {
		return img
	}
	return letterbox(img, width, height, palette.Background)
}

// RenderPreviewFile renders the mesh at the given path; the error reports
// load failures, while unrenderable (empty) meshes come back as ErrEmptyMesh
// from the loader already.
func RenderPreviewFile(path string, width, height int, opts RenderOptions) (image.Image, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return RenderPreview(m, width, height, opts), nil
}

// WritePNG encodes an image to path.
func WritePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// viewBasis builds the camera basis for the given elevation/azimuth angles.
func viewBasis(elevDeg, azimDeg float64) (right, up, forward Vec3) {
	elev := elevDeg * math.Pi / 180
	azim := azimDeg * math.Pi / 180

	// Camera looks at the origin from the direction given by the angles.
	forward = Vec3{
		X: -math.Cos(elev) * math.Cos(azim),
		Y: -math.Cos(elev) * math.Sin(azim),
		Z: -math.Sin(elev),
	}
	worldUp := Vec3{0, 0, 1}
	right = forward.Cross(worldUp).Normalize()
	if right == (Vec3{}) {
		// Looking straight down the vertical axis.
		right = Vec3{1, 0, 0}
	}
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// shadeColour scales a face colour by a 0..1 lighting factor with a floor so
// silhouettes stay visible against the background.
func shadeColour(base color.RGBA, shade float64) color.RGBA {
	factor := 0.35 + 0.65*math.Min(1, math.Max(0, shade))
	return color.RGBA{
		R: uint8(float64(base.R) * factor),
		G: uint8(float64(base.G) * factor),
		B: uint8(float64(base.B) * factor),
		A: base.A,
	}
}

// fillTriangle rasterizes one screen-space triangle with a scanline fill.
func fillTriangle(img *image.RGBA, xs, ys [3]float64, c color.RGBA) {
	minY := maxInt(0, int(math.Floor(math.Min(ys[0], math.Min(ys[1], ys[2])))))
	maxY := minInt(img.Bounds().Dy()-1, int(math.Ceil(math.Max(ys[0], math.Max(ys[1], ys[2])))))

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		var crossings []float64
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			y0, y1 := ys[i], ys[j]
			if (fy >= y0 && fy < y1) || (fy >= y1 && fy < y0) {
				t := (fy - y0) / (y1 - y0)
				crossings = append(crossings, xs[i]+t*(xs[j]-xs[i]))
			}
		}
		if len(crossings) < 2 {
			continue
		}
		sort.Float64s(crossings)
		x0 := maxInt(0, int(math.Floor(crossings[0])))
		x1 := minInt(img.Bounds().Dx()-1, int(math.Ceil(crossings[len(crossings)-1])))
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// letterbox centers src inside a width x height canvas filled with bg,
// using nearest-neighbour scaling to fit while preserving aspect ratio.
func letterbox(src *image.RGBA, width, height int, bg color.RGBA) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	outW := int(float64(srcW) * scale)
	outH := int(float64(srcH) * scale)
	offX := (width - outW) / 2
	offY := (height - outH) / 2

	for y := 0; y < outH; y++ {
		sy := minInt(srcH-1, int(float64(y)/scale))
		for x := 0; x < outW; x++ {
			sx := minInt(srcW-1, int(float64(x)/scale))
			dst.SetRGBA(offX+x, offY+y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
