package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	ObjectID     int            `json:"objectId"`
	ObjectName   string         `json:"objectName,omitempty"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Color        [3]float64     `json:"color"`
	Pixel        [3]uint8       `json:"pixel"`
	Properties   map[string]any `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(c.X*255)), int(math.Round(c.Y*255)), int(math.Round(c.Z*255)))
}

// materialKind names the preset a material most resembles
func materialKind(m *material.Material) string {
	switch {
	case m.Transparency > 0:
		return "glass"
	case m.Reflectivity > 0:
		return "mirror"
	case m.Specular > 0:
		return "plastic"
	default:
		return "matte"
	}
}

// extractMaterialInfo extracts the material's coefficients
func extractMaterialInfo(m *material.Material) (string, map[string]any) {
	properties := map[string]any{
		"color":     hexColor(m.Color),
		"albedo":    vecArray(m.Color),
		"ambient":   m.Ambient,
		"diffuse":   m.Diffuse,
		"specular":  m.Specular,
		"shininess": m.Shininess,
	}
	if m.IsRecursive() {
		properties["reflectivity"] = m.Reflectivity
		properties["transparency"] = m.Transparency
		properties["fresnel"] = m.Fresnel
	}
	if m.Transparency > 0 {
		properties["refractiveIndex"] = m.RefractiveIndex
	}
	return materialKind(m), properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]any) {
	properties := make(map[string]any)

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center.Vec())
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point.Vec())
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Corner.Vec())
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{
			vecArray(geom.V0.Vec()), vecArray(geom.V1.Vec()), vecArray(geom.V2.Vec()),
		}
		properties["normal"] = vecArray(geom.Normal())
		return "triangle", properties

	case *geometry.Disc:
		properties["center"] = vecArray(geom.Center.Vec())
		properties["normal"] = vecArray(geom.Normal)
		properties["radius"] = geom.Radius
		return "disc", properties

	case *geometry.Box:
		properties["center"] = vecArray(geom.Center.Vec())
		properties["size"] = vecArray(geom.Size)
		properties["rotation"] = vecArray(geom.Rotation)
		return "box", properties

	case *geometry.Cylinder:
		properties["baseCenter"] = vecArray(geom.BaseCenter.Vec())
		properties["topCenter"] = vecArray(geom.TopCenter.Vec())
		properties["radius"] = geom.Radius
		properties["capped"] = geom.Capped
		return "cylinder", properties

	case *geometry.Cone:
		properties["baseCenter"] = vecArray(geom.BaseCenter.Vec())
		properties["baseRadius"] = geom.BaseRadius
		properties["topCenter"] = vecArray(geom.TopCenter.Vec())
		properties["topRadius"] = geom.TopRadius
		properties["capped"] = geom.Capped
		return "cone", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result, err := renderer.InspectPixel(sceneObj, pixelY, pixelX)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectID: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.Object.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Object.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectID:     int(result.ObjectID),
		ObjectName:   result.Object.Name,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point.Vec()),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Color:        vecArray(result.Color),
		Pixel:        result.Pixel,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
