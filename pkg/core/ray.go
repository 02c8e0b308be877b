package core

// Point3 is a position in space. It shares Vec3's layout but is never
// normalized; the difference of two points is a Vec3.
type Point3 Vec3

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Vec returns the point's coordinates as a vector from the origin
func (p Point3) Vec() Vec3 {
	return Vec3(p)
}

// Offset returns the point moved by d
func (p Point3) Offset(d Vec3) Point3 {
	return Point3(Vec3(p).Add(d))
}

// Sub returns the vector from q to p
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3(p).Subtract(Vec3(q))
}

// Ray represents a ray with an origin and direction.
// The direction is stored as given; callers normalize it when required.
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	return r.Origin.Offset(r.Direction.Multiply(t))
}
