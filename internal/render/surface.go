// Package render defines the drawing surface the roll session feeds.
package render

//go:generate mockgen -destination=mock/mock_surface.go -package=rendermock github.com/Faultbox/dicebox/internal/render Surface

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/pkg/mesh"
)

// MeshID identifies a mesh on a surface. IDs are allocated by the caller.
type MeshID uint32

// Surface draws die meshes. materials holds the text shown by each material
// index of the mesh; index 0 is the blank background.
type Surface interface {
	AddMesh(id MeshID, geometry *mesh.Mesh, materials []string, visible bool)
	RemoveMesh(id MeshID)
	SetTransform(id MeshID, position mgl64.Vec3, rotation mgl64.Quat)
	SetOpacity(id MeshID, opacity float64)
	Render()
}
