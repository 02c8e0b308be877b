package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// HardMaxDepth caps recursion regardless of the scene's configured depth
const HardMaxDepth = 32

// Shader evaluates the color seen along a ray that hits a known object
type Shader struct {
	scene    *scene.Scene
	maxDepth int
}

// NewShader creates a shader that recurses while depth < maxDepth.
// maxDepth is clamped to [0, HardMaxDepth].
func NewShader(s *scene.Scene, maxDepth int) *Shader {
	return &Shader{
		scene:    s,
		maxDepth: max(0, min(maxDepth, HardMaxDepth)),
	}
}

// MaxDepth returns the effective recursion limit
func (sh *Shader) MaxDepth() int {
	return sh.maxDepth
}

// Shade returns the color of object id as seen along ray. depth is the number
// of secondary bounces already taken; primary rays pass 0. The result is not
// clamped.
func (sh *Shader) Shade(ray core.Ray, id scene.ObjectID, depth int) core.Vec3 {
	hit, ok := sh.scene.HitObject(id, ray)
	if !ok {
		return sh.scene.Background
	}
	mat := sh.scene.Object(id).Material

	local := sh.localColor(ray, hit, mat)
	if depth >= sh.maxDepth || !mat.IsRecursive() {
		return local
	}

	unitDirection := ray.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	refractionRatio := 1.0
	var refracted core.Vec3
	canRefract := false
	if mat.Transparency > 0 {
		refractionRatio = mat.RefractiveIndex
		if hit.FrontFace {
			refractionRatio = 1.0 / mat.RefractiveIndex
		}
		refracted, canRefract = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	kr, kt := mat.SecondaryWeights(cosTheta, refractionRatio, canRefract)
	color := local.Multiply(1 - kr - kt)

	if kr > 0 {
		reflectedRay := core.NewRay(hit.Point, unitDirection.Reflect(hit.Normal))
		color = color.Add(sh.trace(reflectedRay, depth+1).MultiplyVec(mat.Color).Multiply(kr))
	}
	if kt > 0 {
		refractedRay := core.NewRay(hit.Point, refracted.Normalize())
		color = color.Add(sh.trace(refractedRay, depth+1).MultiplyVec(mat.Color).Multiply(kt))
	}

	return color
}

// trace follows a secondary ray; escaping rays see the scene background
func (sh *Shader) trace(ray core.Ray, depth int) core.Vec3 {
	id, ok := sh.scene.Intersect(ray)
	if !ok {
		return sh.scene.Background
	}
	return sh.Shade(ray, id, depth)
}

// localColor computes Phong illumination from every light that is not shadowed
func (sh *Shader) localColor(ray core.Ray, hit *geometry.HitRecord, mat *material.Material) core.Vec3 {
	color := sh.scene.Ambient.MultiplyVec(mat.Color).Multiply(mat.Ambient)
	if len(sh.scene.Lights) == 0 {
		return color
	}

	viewDirection := ray.Direction.Normalize().Negate()
	shadowOrigin := hit.Point.Offset(hit.Normal.Multiply(scene.HitEpsilon))

	for _, light := range sh.scene.Lights {
		illumination := light.Illuminate(hit.Point)
		nDotL := hit.Normal.Dot(illumination.Direction)
		if nDotL <= 0 || illumination.Color == (core.Vec3{}) {
			continue
		}

		shadowRay := core.NewRay(shadowOrigin, illumination.Direction)
		if sh.scene.Occluded(shadowRay, illumination.Distance) {
			continue
		}

		response := mat.Color.Multiply(mat.Diffuse * nDotL)
		if mat.Specular > 0 {
			reflected := illumination.Direction.Negate().Reflect(hit.Normal)
			if rDotV := reflected.Dot(viewDirection); rDotV > 0 {
				response = response.Add(core.Splat(mat.Specular * math.Pow(rDotV, mat.Shininess)))
			}
		}

		color = color.Add(response.MultiplyVec(illumination.Color))
	}

	return color
}
