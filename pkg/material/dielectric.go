package material

import "math"

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// SecondaryWeights returns the weights of the reflected and refracted rays at
// a hit where cosine is the cosine of the incident angle and refractionRatio
// is eta_incident / eta_transmitted. Without Fresnel the material's own
// coefficients are returned. With Fresnel the combined kr+kt budget is split
// by Schlick reflectance. When the ray cannot refract, the whole budget goes
// to reflection in either mode.
func (m *Material) SecondaryWeights(cosine, refractionRatio float64, canRefract bool) (kr, kt float64) {
	if m.Transparency > 0 && !canRefract {
		return m.Reflectivity + m.Transparency, 0
	}
	if !m.Fresnel || m.Transparency == 0 {
		return m.Reflectivity, m.Transparency
	}
	budget := m.Reflectivity + m.Transparency
	r := Reflectance(cosine, refractionRatio)
	return budget * r, budget * (1 - r)
}
