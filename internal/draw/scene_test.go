package draw

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/object"
)

const (
	testWidth  = 80
	testHeight = 48
)

func TestProjectCenter(t *testing.T) {
	cam := NewCamera(object.NewPlayer(), testWidth, testHeight)

	pt, ok := cam.Project(mgl64.Vec3{0, object.EyeHeight, -10})
	if !ok {
		t.Fatal("point ahead reported behind camera")
	}
	if math.Abs(pt.X-testWidth/2) > 1e-6 || math.Abs(pt.Y-testHeight/2) > 1e-6 {
		t.Errorf("point ahead projected to %v, want canvas center", pt)
	}
}

func TestProjectDirections(t *testing.T) {
	cam := NewCamera(object.NewPlayer(), testWidth, testHeight)

	right, _ := cam.Project(mgl64.Vec3{3, object.EyeHeight, -10})
	if right.X <= testWidth/2 {
		t.Errorf("point to the right projected at x=%v", right.X)
	}
	up, _ := cam.Project(mgl64.Vec3{0, object.EyeHeight + 3, -10})
	if up.Y >= testHeight/2 {
		t.Errorf("point above projected at y=%v", up.Y)
	}
	if _, ok := cam.Project(mgl64.Vec3{0, object.EyeHeight, 10}); ok {
		t.Error("point behind the camera was projected")
	}
}

func TestProjectFollowsYaw(t *testing.T) {
	p := object.NewPlayer()
	p.Yaw = math.Pi / 2 // Facing -X
	cam := NewCamera(p, testWidth, testHeight)

	pt, ok := cam.Project(mgl64.Vec3{-10, object.EyeHeight, 0})
	if !ok {
		t.Fatal("point in view direction reported behind camera")
	}
	if math.Abs(pt.X-testWidth/2) > 1e-6 {
		t.Errorf("x = %v, want %v", pt.X, testWidth/2)
	}
}

func TestSegmentClipsAtNearPlane(t *testing.T) {
	cam := NewCamera(object.NewPlayer(), testWidth, testHeight)
	ahead := mgl64.Vec3{1, object.EyeHeight, -10}
	behind := mgl64.Vec3{1, object.EyeHeight, 10}

	a, b, ok := cam.Segment(ahead, behind)
	if !ok {
		t.Fatal("segment crossing the near plane was dropped")
	}
	want, _ := cam.Project(ahead)
	if a != want {
		t.Errorf("visible endpoint moved: got %v, want %v", a, want)
	}
	if math.IsInf(b.X, 0) || math.IsNaN(b.X) {
		t.Errorf("clipped endpoint not finite: %v", b)
	}
	if b.X <= a.X {
		t.Errorf("clipped endpoint %v should lie further right than %v", b, a)
	}

	if _, _, ok := cam.Segment(behind, behind.Add(mgl64.Vec3{0, 0, 5})); ok {
		t.Error("segment fully behind the camera was kept")
	}
}

func TestDrawSceneShowsEnemyAhead(t *testing.T) {
	cv := NewCanvas(testWidth, testHeight/2)
	v := game.View{
		Phase:   game.Playing,
		Player:  object.NewPlayer(),
		Enemies: []object.Enemy{{ID: 1, Position: mgl64.Vec3{0, object.GroundHeight, -5}, Health: 3}},
	}

	DrawScene(cv, v)

	// The enemy's silhouette straddles the center column below the horizon.
	cam := NewCamera(v.Player, cv.PixelWidth(), cv.PixelHeight())
	top, _ := cam.Project(mgl64.Vec3{-0.5, object.GroundHeight + 1, -4.5})
	bottom, _ := cam.Project(mgl64.Vec3{-0.5, object.GroundHeight - 1, -4.5})
	x := int(math.Round(top.X))
	found := false
	for y := int(math.Round(top.Y)); y <= int(math.Round(bottom.Y)); y++ {
		if cv.At(x, y) {
			found = true
			break
		}
	}
	if !found {
		t.Error("enemy front edge not drawn")
	}

	// Crosshair is drawn while playing.
	if !cv.At(cv.PixelWidth()/2+2, cv.PixelHeight()/2) {
		t.Error("crosshair missing")
	}
}

func TestSceneRendererRunsOverlay(t *testing.T) {
	var out bytes.Buffer
	cv := NewCanvas(20, 10)
	called := false
	r := NewSceneRenderer(cv, NewChunkWriter(&out), func(cw *ChunkWriter, v game.View) {
		called = true
		cw.WriteAt(1, 1, "HUD")
	})

	if err := r.Render(game.View{Player: object.NewPlayer()}); err != nil {
		t.Fatal(err)
	}

	if !called {
		t.Error("overlay not called")
	}
	if !bytes.HasSuffix(out.Bytes(), []byte("\033[1;1HHUD")) {
		t.Error("overlay not written after the scene")
	}
}
