package raster

import "image"

// Component is a connected region of white pixels in a binary image.
type Component struct {
	// Area is the number of pixels belonging to the component.
	Area int
	// Bounds is the tight bounding box around the component.
	Bounds image.Rectangle
}

// AspectRatio returns the width-to-height ratio of the component's bounding
// box. Zero-height components return 0.
func (c Component) AspectRatio() float64 {
	h := c.Bounds.Dy()
	if h == 0 {
		return 0
	}
	return float64(c.Bounds.Dx()) / float64(h)
}

// Components labels the 8-connected white (255) regions of a binary image
// using an iterative flood fill.
func Components(g *image.Gray) []Component {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	visited := make([]bool, w*h)

	at := func(x, y int) uint8 {
		return g.Pix[(y)*g.Stride+x]
	}

	var comps []Component
	var stack []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || at(x, y) != 255 {
				continue
			}
			comp := Component{Bounds: image.Rect(x, y, x+1, y+1)}
			stack = stack[:0]
			stack = append(stack, image.Pt(x, y))
			visited[y*w+x] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp.Area++
				comp.Bounds = comp.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if visited[ny*w+nx] || at(nx, ny) != 255 {
							continue
						}
						visited[ny*w+nx] = true
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}
