package layout

import (
	"math"
	"testing"
)

func TestOrthogonalize(t *testing.T) {
	tests := []struct {
		name  string
		in    []Point
		chans []channel
		want  []Point
	}{
		{
			name: "vertical segment untouched",
			in:   []Point{{X: 10, Y: 0}, {X: 10, Y: 50}},
			want: []Point{{X: 10, Y: 0}, {X: 10, Y: 50}},
		},
		{
			name: "diagonal becomes three runs",
			in:   []Point{{X: 0, Y: 0}, {X: 40, Y: 100}},
			want: []Point{{X: 0, Y: 0}, {X: 0, Y: 50}, {X: 40, Y: 50}, {X: 40, Y: 100}},
		},
		{
			name: "collinear waypoints collapse",
			in:   []Point{{X: 10, Y: 0}, {X: 10, Y: 50}, {X: 10, Y: 100}},
			want: []Point{{X: 10, Y: 0}, {X: 10, Y: 100}},
		},
		{
			name:  "midpoint inside channel kept",
			in:    []Point{{X: 0, Y: 0}, {X: 40, Y: 100}},
			chans: []channel{{top: 40, bottom: 60}},
			want:  []Point{{X: 0, Y: 0}, {X: 0, Y: 50}, {X: 40, Y: 50}, {X: 40, Y: 100}},
		},
		{
			name:  "midpoint inside a band moved to channel center",
			in:    []Point{{X: 0, Y: 60}, {X: 40, Y: 400}},
			chans: []channel{{top: 320, bottom: 400}},
			want:  []Point{{X: 0, Y: 60}, {X: 0, Y: 360}, {X: 40, Y: 360}, {X: 40, Y: 400}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orthogonalize(tt.in, tt.chans)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d points %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("point %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want Point
	}{
		{
			name: "single segment",
			pts:  []Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
			want: Point{X: 5, Y: 0},
		},
		{
			name: "bend falls on midpoint of longer leg",
			pts:  []Point{{X: 0, Y: 0}, {X: 0, Y: 30}, {X: 10, Y: 30}},
			want: Point{X: 0, Y: 20},
		},
		{
			name: "degenerate single point",
			pts:  []Point{{X: 3, Y: 4}},
			want: Point{X: 3, Y: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := midpoint(tt.pts)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("midpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{name: "odd count", xs: []float64{30, 10, 20}, want: 20},
		{name: "even count averages middle pair", xs: []float64{40, 10, 20, 30}, want: 25},
		{name: "single value", xs: []float64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.xs); got != tt.want {
				t.Errorf("median() = %v, want %v", got, tt.want)
			}
		})
	}
}
