package draw

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/object"
)

// Camera lens.
const (
	FieldOfView  = 75.0 // Vertical, degrees
	NearPlane    = 0.1
	FarPlane     = 1000.0
	DrawDistance = 100.0 // Entities farther than this are not drawn
)

// Arena floor drawn as a grid on y = 0.
const (
	floorHalfSize = 50.0
	floorSpacing  = 5.0
)

// Camera projects world-space points onto a canvas of a given pixel size.
type Camera struct {
	eye    mgl64.Vec3
	view   mgl64.Mat4
	proj   mgl64.Mat4
	width  float64
	height float64
}

// NewCamera builds the camera for the player's pose on a width x height pixel canvas.
func NewCamera(p object.Player, width, height int) Camera {
	w := math.Max(float64(width), 1)
	h := math.Max(float64(height), 1)

	pos := p.Position
	rot := p.Orientation().Conjugate().Mat4()
	view := rot.Mul4(mgl64.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))

	return Camera{
		eye:    pos,
		view:   view,
		proj:   mgl64.Perspective(mgl64.DegToRad(FieldOfView), w/h, NearPlane, FarPlane),
		width:  w,
		height: h,
	}
}

// Project returns the canvas position of a world point. ok is false when the
// point is behind the near plane.
func (c Camera) Project(p mgl64.Vec3) (pt Point, ok bool) {
	v := mgl64.TransformCoordinate(p, c.view)
	if v.Z() > -NearPlane {
		return Point{}, false
	}
	return c.toCanvas(v), true
}

// Segment returns the canvas endpoints of the world segment a-b, clipped
// against the near plane. ok is false when the whole segment is behind it.
func (c Camera) Segment(a, b mgl64.Vec3) (Point, Point, bool) {
	va := mgl64.TransformCoordinate(a, c.view)
	vb := mgl64.TransformCoordinate(b, c.view)
	inA := va.Z() <= -NearPlane
	inB := vb.Z() <= -NearPlane

	switch {
	case !inA && !inB:
		return Point{}, Point{}, false
	case !inA:
		va = clipNear(va, vb)
	case !inB:
		vb = clipNear(vb, va)
	}
	return c.toCanvas(va), c.toCanvas(vb), true
}

// clipNear moves the view-space point out (in front of the near plane) along
// the segment toward in until it lies on the plane.
func clipNear(out, in mgl64.Vec3) mgl64.Vec3 {
	t := (-NearPlane - out.Z()) / (in.Z() - out.Z())
	return out.Add(in.Sub(out).Mul(t))
}

// toCanvas maps a view-space point in front of the camera to canvas pixels.
func (c Camera) toCanvas(v mgl64.Vec3) Point {
	clip := c.proj.Mul4x1(v.Vec4(1))
	x := clip.X() / clip.W()
	y := clip.Y() / clip.W()
	return Point{
		X: (x + 1) / 2 * c.width,
		Y: (1 - y) / 2 * c.height,
	}
}

// InRange reports whether p is close enough to the camera to be drawn.
func (c Camera) InRange(p mgl64.Vec3) bool {
	d := p.Sub(c.eye)
	return d.Dot(d) <= DrawDistance*DrawDistance
}

// DrawSegment draws the world segment a-b.
func DrawSegment(cv *Canvas, cam Camera, a, b mgl64.Vec3) {
	if p1, p2, ok := cam.Segment(a, b); ok {
		cv.DrawLine(p1, p2)
	}
}

// boxEdges lists corner index pairs of a box's 12 edges. Corner bit 0 is +x,
// bit 1 is +y, bit 2 is +z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // Along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // Along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Along z
}

// DrawBox draws an axis-aligned wireframe box centered at center.
func DrawBox(cv *Canvas, cam Camera, center, size mgl64.Vec3) {
	half := size.Mul(0.5)
	var corners [8]mgl64.Vec3
	for i := range corners {
		offset := mgl64.Vec3{-half.X(), -half.Y(), -half.Z()}
		if i&1 != 0 {
			offset[0] = half.X()
		}
		if i&2 != 0 {
			offset[1] = half.Y()
		}
		if i&4 != 0 {
			offset[2] = half.Z()
		}
		corners[i] = center.Add(offset)
	}
	for _, e := range boxEdges {
		DrawSegment(cv, cam, corners[e[0]], corners[e[1]])
	}
}

// DrawMarker draws a small cross at a world point, scaled by distance so
// nearby points look bigger.
func DrawMarker(cv *Canvas, cam Camera, p mgl64.Vec3, radius float64) {
	pt, ok := cam.Project(p)
	if !ok {
		return
	}
	dist := p.Sub(cam.eye).Len()
	size := 0
	if dist > 0 {
		focal := cam.height / 2 / math.Tan(mgl64.DegToRad(FieldOfView)/2)
		size = int(math.Round(radius / dist * focal))
	}
	x, y := int(math.Round(pt.X)), int(math.Round(pt.Y))
	cv.Set(x, y)
	for i := 1; i <= size; i++ {
		cv.Set(x-i, y)
		cv.Set(x+i, y)
		cv.Set(x, y-i)
		cv.Set(x, y+i)
	}
}

// crosshairArm is the crosshair arm length in pixels.
const crosshairArm = 2

// DrawCrosshair marks the canvas center, where bullets fly.
func DrawCrosshair(cv *Canvas) {
	cx, cy := cv.PixelWidth()/2, cv.PixelHeight()/2
	for i := 2; i <= 1+crosshairArm; i++ {
		cv.Set(cx-i, cy)
		cv.Set(cx+i, cy)
		cv.Set(cx, cy-i)
		cv.Set(cx, cy+i)
	}
}

// DrawScene draws the first-person view of v onto the canvas.
func DrawScene(cv *Canvas, v game.View) {
	cam := NewCamera(v.Player, cv.PixelWidth(), cv.PixelHeight())

	for x := -floorHalfSize; x <= floorHalfSize; x += floorSpacing {
		DrawSegment(cv, cam, mgl64.Vec3{x, 0, -floorHalfSize}, mgl64.Vec3{x, 0, floorHalfSize})
	}
	for z := -floorHalfSize; z <= floorHalfSize; z += floorSpacing {
		DrawSegment(cv, cam, mgl64.Vec3{-floorHalfSize, 0, z}, mgl64.Vec3{floorHalfSize, 0, z})
	}

	for _, o := range v.Obstacles {
		if cam.InRange(o.Position) {
			DrawBox(cv, cam, o.Position, object.ObstacleSize)
		}
	}
	for _, e := range v.Enemies {
		if cam.InRange(e.Position) {
			DrawBox(cv, cam, e.Position, object.EnemySize)
		}
	}
	for _, b := range v.Bullets {
		if cam.InRange(b.Position) {
			DrawMarker(cv, cam, b.Position, object.BulletRadius)
		}
	}

	if v.Phase == game.Playing {
		DrawCrosshair(cv)
	}
}

// Overlay draws text on top of a rendered scene, e.g. a HUD.
type Overlay func(cw *ChunkWriter, v game.View)

// SceneRenderer renders game views to a terminal: the wireframe scene on a
// half-block canvas, then an optional overlay.
type SceneRenderer struct {
	canvas  *Canvas
	out     *ChunkWriter
	overlay Overlay
}

// NewSceneRenderer creates a renderer drawing onto canvas and writing through out.
func NewSceneRenderer(canvas *Canvas, out *ChunkWriter, overlay Overlay) *SceneRenderer {
	return &SceneRenderer{canvas: canvas, out: out, overlay: overlay}
}

// Canvas returns the canvas the renderer draws on.
func (s *SceneRenderer) Canvas() *Canvas {
	return s.canvas
}

// Render draws one frame and flushes it to the terminal.
func (s *SceneRenderer) Render(v game.View) error {
	s.canvas.Clear()
	DrawScene(s.canvas, v)
	s.canvas.Render(s.out)
	s.canvas.RenderBorder(s.out)
	if s.overlay != nil {
		s.overlay(s.out, v)
	}
	return s.out.Flush()
}
