package img2color

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/jimwalker53/Image-to-SVG/imageutil"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

func fourColorImage() *image.NRGBA {
	img := imageutil.CreateSolidImage(20, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	imageutil.FillRect(img, image.Rect(0, 0, 10, 10), color.NRGBA{R: 220, G: 20, B: 20, A: 255})
	imageutil.FillRect(img, image.Rect(10, 0, 20, 10), color.NRGBA{R: 20, G: 20, B: 220, A: 255})
	imageutil.FillRect(img, image.Rect(0, 10, 10, 20), color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	return img
}

func checkPalette(t *testing.T, p i2stypes.Palette, img *image.NRGBA, k int) {
	t.Helper()
	if len(p.Colors) == 0 || len(p.Colors) > k {
		t.Fatalf("Expected 1..%d colors, got %d", k, len(p.Colors))
	}
	b := img.Bounds()
	if len(p.Assignments) != b.Dx()*b.Dy() {
		t.Fatalf("Expected %d assignments, got %d", b.Dx()*b.Dy(), len(p.Assignments))
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			a := p.Assignments[y*b.Dx()+x]
			if img.NRGBAAt(x, y).A <= OpaqueAlpha {
				if a != i2stypes.Transparent {
					t.Fatalf("Transparent pixel %d,%d assigned %d", x, y, a)
				}
				continue
			}
			if a < 0 || a >= len(p.Colors) {
				t.Fatalf("Opaque pixel %d,%d has invalid assignment %d", x, y, a)
			}
		}
	}
}

func TestKMeansAssignmentsValid(t *testing.T) {
	img := fourColorImage()
	imageutil.FillRect(img, image.Rect(15, 15, 20, 20), color.NRGBA{A: 0})

	for _, metric := range []i2stypes.Metric{i2stypes.MetricLAB, i2stypes.MetricRGB} {
		for _, k := range []int{1, 2, 4, 8} {
			p := Quantize(img, k, metric, rand.New(rand.NewSource(7)))
			checkPalette(t, p, img, k)
		}
	}
}

func TestKMeansRecoversDistinctColors(t *testing.T) {
	img := fourColorImage()
	p := SortByLuminance(Quantize(img, 4, i2stypes.MetricLAB, rand.New(rand.NewSource(3))))
	if len(p.Colors) != 4 {
		t.Fatalf("Expected 4 colors, got %d", len(p.Colors))
	}
	if p.Colors[0] != i2stypes.Black {
		t.Errorf("Expected darkest color black, got %v", p.Colors[0])
	}
	if p.Colors[3] != i2stypes.White {
		t.Errorf("Expected lightest color white, got %v", p.Colors[3])
	}
	for i, n := range Coverage(p) {
		if n != 100 {
			t.Errorf("Color %d: expected 100 pixels, got %d", i, n)
		}
	}
}

func TestKMeansFewerDistinctThanK(t *testing.T) {
	img := imageutil.CreateSolidImage(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	imageutil.FillRect(img, image.Rect(0, 0, 2, 2), color.NRGBA{A: 255})

	p := Quantize(img, 6, i2stypes.MetricLAB, rand.New(rand.NewSource(1)))
	if len(p.Colors) != 2 {
		t.Fatalf("Expected 2 colors for a two-color image, got %d", len(p.Colors))
	}
	checkPalette(t, p, img, 6)
}

func TestKMeansDeterministic(t *testing.T) {
	img := fourColorImage()
	a := Quantize(img, 3, i2stypes.MetricLAB, rand.New(rand.NewSource(42)))
	b := Quantize(img, 3, i2stypes.MetricLAB, rand.New(rand.NewSource(42)))
	if len(a.Colors) != len(b.Colors) {
		t.Fatalf("Palette sizes differ: %d vs %d", len(a.Colors), len(b.Colors))
	}
	for i := range a.Colors {
		if a.Colors[i] != b.Colors[i] {
			t.Errorf("Color %d differs: %v vs %v", i, a.Colors[i], b.Colors[i])
		}
	}
	for i := range a.Assignments {
		if a.Assignments[i] != b.Assignments[i] {
			t.Fatalf("Assignment %d differs", i)
		}
	}
}

func TestKMeansAllTransparent(t *testing.T) {
	img := imageutil.CreateSolidImage(4, 3, color.NRGBA{R: 50, A: 100})
	p := Quantize(img, 4, i2stypes.MetricLAB, nil)
	if len(p.Colors) != 1 || p.Colors[0] != i2stypes.White {
		t.Fatalf("Expected single white color, got %v", p.Colors)
	}
	if len(p.Assignments) != 12 {
		t.Fatalf("Expected 12 assignments, got %d", len(p.Assignments))
	}
	for i, a := range p.Assignments {
		if a != 0 {
			t.Errorf("Assignment %d: expected 0, got %d", i, a)
		}
	}
}

func TestKMeansSampling(t *testing.T) {
	img := fourColorImage()
	p := KMeans(img, Config{K: 4, Rand: rand.New(rand.NewSource(5)), SampleCap: 37})
	checkPalette(t, p, img, 4)
	var assigned int
	for _, n := range Coverage(p) {
		assigned += n
	}
	if assigned != 400 {
		t.Errorf("Every opaque pixel should be reassigned, got %d", assigned)
	}
}

func TestMedianCut(t *testing.T) {
	img := fourColorImage()
	imageutil.FillRect(img, image.Rect(0, 0, 1, 1), color.NRGBA{A: 0})

	p := MedianCut(img, Config{K: 4})
	checkPalette(t, p, img, 4)
	if len(p.Colors) != 4 {
		t.Errorf("Expected 4 colors, got %d", len(p.Colors))
	}

	solid := imageutil.CreateSolidImage(5, 5, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	p = MedianCut(solid, Config{K: 8})
	if len(p.Colors) != 1 {
		t.Errorf("Expected 1 color for solid image, got %d", len(p.Colors))
	}
}

func TestSortByLuminance(t *testing.T) {
	p := i2stypes.Palette{
		Colors:      []i2stypes.Color{i2stypes.White, {R: 128, G: 128, B: 128}, i2stypes.Black},
		Assignments: []int{0, 1, 2, -1, 0},
	}
	s := SortByLuminance(p)
	want := []i2stypes.Color{i2stypes.Black, {R: 128, G: 128, B: 128}, i2stypes.White}
	for i := range want {
		if s.Colors[i] != want[i] {
			t.Errorf("Color %d: expected %v, got %v", i, want[i], s.Colors[i])
		}
	}
	wantAssign := []int{2, 1, 0, -1, 2}
	for i := range wantAssign {
		if s.Assignments[i] != wantAssign[i] {
			t.Errorf("Assignment %d: expected %d, got %d", i, wantAssign[i], s.Assignments[i])
		}
	}
}

func TestSplitColors(t *testing.T) {
	p := i2stypes.Palette{
		Colors:      []i2stypes.Color{i2stypes.Black, i2stypes.White},
		Assignments: []int{0, 1, -1, 0},
	}
	masks, err := SplitColors(p, image.Rect(0, 0, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got := masks[0].Pix; got[0] != 0 || got[1] != 255 || got[2] != 255 || got[3] != 0 {
		t.Errorf("Unexpected mask 0: %v", got)
	}
	if got := masks[1].Pix; got[0] != 255 || got[1] != 0 || got[2] != 255 || got[3] != 255 {
		t.Errorf("Unexpected mask 1: %v", got)
	}

	if _, err := SplitColors(p, image.Rect(0, 0, 3, 3)); err == nil {
		t.Error("Expected error for mismatched bounds")
	}
}

func TestLab(t *testing.T) {
	white := ToLab(i2stypes.White)
	if math.Abs(white.L-100) > 0.01 || math.Abs(white.A) > 0.01 || math.Abs(white.B) > 0.01 {
		t.Errorf("White should be L=100 a=0 b=0, got %+v", white)
	}
	black := ToLab(i2stypes.Black)
	if math.Abs(black.L) > 0.01 {
		t.Errorf("Black should be L=0, got %+v", black)
	}
	if d := DeltaE(i2stypes.Black, i2stypes.White); math.Abs(d-100) > 0.01 {
		t.Errorf("Expected deltaE 100 between black and white, got %v", d)
	}
}

func TestRemoveBackground(t *testing.T) {
	img := imageutil.CreateSolidImage(10, 10, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	imageutil.FillRect(img, image.Rect(3, 3, 7, 7), color.NRGBA{R: 200, G: 0, B: 0, A: 255})
	imageutil.FillRect(img, image.Rect(0, 0, 1, 1), color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	bg, ok := EstimateBackground(img)
	if !ok || bg.R < 245 {
		t.Fatalf("Expected light background estimate, got %v %v", bg, ok)
	}

	out := RemoveBackground(img, DefaultBackgroundDeltaE)
	if out.NRGBAAt(0, 5).A != 0 {
		t.Error("Border pixel should become transparent")
	}
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("Near-background pixel should become transparent")
	}
	if out.NRGBAAt(5, 5).A != 255 {
		t.Error("Foreground pixel should stay opaque")
	}
	if img.NRGBAAt(0, 5).A != 255 {
		t.Error("Input must not be modified")
	}
}
