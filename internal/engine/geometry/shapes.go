package geometry

import "github.com/chewxy/math32"

// Box builds an axis-aligned box centered on the origin, four vertices per
// face so each face has a flat normal.
func Box(width, height, depth float32) *Mesh {
	hw, hh, hd := width/2, height/2, depth/2

	// Each face: normal, then corners counter-clockwise seen from outside
	faces := [6]struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.n})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.computeBounds()
	return m
}

// Plane builds a single quad in the XY plane facing +Z.
func Plane(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-hw, -hh, 0}, Normal: n},
			{Position: [3]float32{hw, -hh, 0}, Normal: n},
			{Position: [3]float32{hw, hh, 0}, Normal: n},
			{Position: [3]float32{-hw, hh, 0}, Normal: n},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.computeBounds()
	return m
}

// Sphere builds a UV sphere. widthSegments runs around Y, heightSegments
// from pole to pole. The pole rows emit one triangle per quad instead of two.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
	}

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		st, ct := math32.Sincos(v * math32.Pi)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sp, cp := math32.Sincos(u * 2 * math32.Pi)
			n := [3]float32{-cp * st, ct, sp * st}
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
			row[ix] = uint32(len(m.Vertices) - 1)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	m.computeBounds()
	return m
}

// Grid builds a square grid of lines on the XZ plane. The two lines through
// the origin use centerColor, the rest use lineColor.
func Grid(size float32, divisions int, centerColor, lineColor [3]float32) *Lines {
	if divisions < 1 {
		divisions = 1
	}
	center := divisions / 2
	step := size / float32(divisions)
	half := size / 2

	l := &Lines{Vertices: make([]LineVertex, 0, (divisions+1)*4)}
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		color := lineColor
		if i == center {
			color = centerColor
		}
		l.Vertices = append(l.Vertices,
			LineVertex{Position: [3]float32{-half, 0, k}, Color: color},
			LineVertex{Position: [3]float32{half, 0, k}, Color: color},
			LineVertex{Position: [3]float32{k, 0, -half}, Color: color},
			LineVertex{Position: [3]float32{k, 0, half}, Color: color},
		)
	}
	return l
}

// Axes builds three lines from the origin: X red, Y green, Z blue.
func Axes(size float32) *Lines {
	red := [3]float32{1, 0, 0}
	green := [3]float32{0, 1, 0}
	blue := [3]float32{0, 0, 1}
	return &Lines{Vertices: []LineVertex{
		{Position: [3]float32{0, 0, 0}, Color: red},
		{Position: [3]float32{size, 0, 0}, Color: red},
		{Position: [3]float32{0, 0, 0}, Color: green},
		{Position: [3]float32{0, size, 0}, Color: green},
		{Position: [3]float32{0, 0, 0}, Color: blue},
		{Position: [3]float32{0, 0, size}, Color: blue},
	}}
}

// FromSegments builds a line list from flat xyz pairs in a single color.
func FromSegments(points []float32, color [3]float32) *Lines {
	l := &Lines{Vertices: make([]LineVertex, 0, len(points)/3)}
	for i := 0; i+2 < len(points); i += 3 {
		l.Vertices = append(l.Vertices, LineVertex{
			Position: [3]float32{points[i], points[i+1], points[i+2]},
			Color:    color,
		})
	}
	return l
}
