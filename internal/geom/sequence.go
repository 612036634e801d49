package geom

// Sequence stores vertices as parallel ordinate arrays. The z and m arrays
// exist only when the sequence carries that ordinate, and every present
// array has the same length.
type Sequence struct {
	xs, ys, zs, ms []float64
	hasZ, hasM     bool
}

// NewSequence returns an empty sequence with the given ordinate flags.
func NewSequence(hasZ, hasM bool) Sequence {
	return Sequence{hasZ: hasZ, hasM: hasM}
}

func (s *Sequence) Len() int   { return len(s.xs) }
func (s *Sequence) HasZ() bool { return s.hasZ }
func (s *Sequence) HasM() bool { return s.hasM }

func (s *Sequence) inRange(i int) bool { return i >= 0 && i < len(s.xs) }

// Resize truncates or zero-extends every present ordinate array to n.
func (s *Sequence) Resize(n int) {
	if n < 0 {
		n = 0
	}
	s.xs = resize(s.xs, n)
	s.ys = resize(s.ys, n)
	if s.hasZ {
		s.zs = resize(s.zs, n)
	}
	if s.hasM {
		s.ms = resize(s.ms, n)
	}
}

func resize(a []float64, n int) []float64 {
	if n <= len(a) {
		return a[:n]
	}
	if n <= cap(a) {
		old := len(a)
		a = a[:n]
		clear(a[old:])
		return a
	}
	out := make([]float64, n)
	copy(out, a)
	return out
}

// Append adds p. Ordinates the sequence carries but p lacks become 0.
func (s *Sequence) Append(p Point) {
	s.xs = append(s.xs, p.X())
	s.ys = append(s.ys, p.Y())
	if s.hasZ {
		s.zs = append(s.zs, p.Z())
	}
	if s.hasM {
		s.ms = append(s.ms, p.M())
	}
}

// InsertAt inserts p before index i. i may equal Len to append; any other
// out of range index is ignored.
func (s *Sequence) InsertAt(i int, p Point) {
	if i < 0 || i > len(s.xs) {
		return
	}
	s.xs = insert(s.xs, i, p.X())
	s.ys = insert(s.ys, i, p.Y())
	if s.hasZ {
		s.zs = insert(s.zs, i, p.Z())
	}
	if s.hasM {
		s.ms = insert(s.ms, i, p.M())
	}
}

func insert(a []float64, i int, v float64) []float64 {
	a = append(a, 0)
	copy(a[i+1:], a[i:])
	a[i] = v
	return a
}

// RemoveAt drops vertex i; out of range is ignored.
func (s *Sequence) RemoveAt(i int) {
	if !s.inRange(i) {
		return
	}
	s.xs = append(s.xs[:i], s.xs[i+1:]...)
	s.ys = append(s.ys[:i], s.ys[i+1:]...)
	if s.hasZ {
		s.zs = append(s.zs[:i], s.zs[i+1:]...)
	}
	if s.hasM {
		s.ms = append(s.ms[:i], s.ms[i+1:]...)
	}
}

// XAt and friends return 0 for an out of range index or a missing ordinate.
func (s *Sequence) XAt(i int) float64 {
	if !s.inRange(i) {
		return 0
	}
	return s.xs[i]
}

func (s *Sequence) YAt(i int) float64 {
	if !s.inRange(i) {
		return 0
	}
	return s.ys[i]
}

func (s *Sequence) ZAt(i int) float64 {
	if !s.hasZ || !s.inRange(i) {
		return 0
	}
	return s.zs[i]
}

func (s *Sequence) MAt(i int) float64 {
	if !s.hasM || !s.inRange(i) {
		return 0
	}
	return s.ms[i]
}

// Setters ignore out of range indexes and missing ordinates.
func (s *Sequence) SetXAt(i int, v float64) {
	if s.inRange(i) {
		s.xs[i] = v
	}
}

func (s *Sequence) SetYAt(i int, v float64) {
	if s.inRange(i) {
		s.ys[i] = v
	}
}

func (s *Sequence) SetZAt(i int, v float64) {
	if s.hasZ && s.inRange(i) {
		s.zs[i] = v
	}
}

func (s *Sequence) SetMAt(i int, v float64) {
	if s.hasM && s.inRange(i) {
		s.ms[i] = v
	}
}

// Point builds the vertex at i carrying the sequence's ordinate flags. An
// out of range index yields the 2D origin.
func (s *Sequence) Point(i int) Point {
	if !s.inRange(i) {
		return XY(0, 0)
	}
	return Point{
		typ: NewType(PointType, s.hasZ, s.hasM),
		x:   s.xs[i],
		y:   s.ys[i],
		z:   s.ZAt(i),
		m:   s.MAt(i),
	}
}

func (s *Sequence) Points() []Point {
	out := make([]Point, len(s.xs))
	for i := range out {
		out[i] = s.Point(i)
	}
	return out
}

func (s *Sequence) clone() Sequence {
	c := Sequence{hasZ: s.hasZ, hasM: s.hasM}
	c.xs = append([]float64(nil), s.xs...)
	c.ys = append([]float64(nil), s.ys...)
	if s.hasZ {
		c.zs = append([]float64(nil), s.zs...)
	}
	if s.hasM {
		c.ms = append([]float64(nil), s.ms...)
	}
	return c
}

func (s *Sequence) reverse() {
	rev(s.xs)
	rev(s.ys)
	rev(s.zs)
	rev(s.ms)
}

func rev(a []float64) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// setZ switches the Z array on (filled with fill) or off.
func (s *Sequence) setZ(on bool, fill float64) {
	s.hasZ = on
	s.zs = nil
	if on {
		s.zs = filled(len(s.xs), fill)
	}
}

func (s *Sequence) setM(on bool, fill float64) {
	s.hasM = on
	s.ms = nil
	if on {
		s.ms = filled(len(s.xs), fill)
	}
}

func filled(n int, v float64) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = v
	}
	return a
}

func (s *Sequence) equal(o *Sequence) bool {
	if s.Len() != o.Len() || s.hasZ != o.hasZ || s.hasM != o.hasM {
		return false
	}
	for i := range s.xs {
		if !s.Point(i).Equal(o.Point(i)) {
			return false
		}
	}
	return true
}
