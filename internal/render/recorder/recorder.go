// Package recorder is a headless render.Surface that logs what it is asked
// to draw and keeps the latest state of every mesh.
package recorder

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/render"
	"github.com/Faultbox/dicebox/pkg/mesh"
)

// Entry is the last known state of a mesh.
type Entry struct {
	Mesh      *mesh.Mesh
	Materials []string
	Visible   bool
	Position  mgl64.Vec3
	Rotation  mgl64.Quat
	Opacity   float64
}

// Recorder implements render.Surface.
type Recorder struct {
	meshes map[render.MeshID]*Entry
	frames int
	log    *zap.Logger
}

var _ render.Surface = (*Recorder)(nil)

// New creates an empty recorder. A nil logger discards output.
func New(log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		meshes: make(map[render.MeshID]*Entry),
		log:    log,
	}
}

// AddMesh registers a mesh at the origin with full opacity.
func (r *Recorder) AddMesh(id render.MeshID, geometry *mesh.Mesh, materials []string, visible bool) {
	r.meshes[id] = &Entry{
		Mesh:      geometry,
		Materials: slices.Clone(materials),
		Visible:   visible,
		Rotation:  mgl64.QuatIdent(),
		Opacity:   1,
	}
	r.log.Debug("mesh added",
		zap.Uint32("id", uint32(id)),
		zap.Int("triangles", geometry.TriangleCount()),
		zap.Strings("materials", materials),
		zap.Bool("visible", visible))
}

func (r *Recorder) RemoveMesh(id render.MeshID) {
	if _, ok := r.meshes[id]; !ok {
		r.log.Warn("removing unknown mesh", zap.Uint32("id", uint32(id)))
		return
	}
	delete(r.meshes, id)
	r.log.Debug("mesh removed", zap.Uint32("id", uint32(id)))
}

func (r *Recorder) SetTransform(id render.MeshID, position mgl64.Vec3, rotation mgl64.Quat) {
	if e, ok := r.meshes[id]; ok {
		e.Position = position
		e.Rotation = rotation
	}
}

func (r *Recorder) SetOpacity(id render.MeshID, opacity float64) {
	if e, ok := r.meshes[id]; ok {
		e.Opacity = opacity
	}
}

// Render counts a frame.
func (r *Recorder) Render() {
	r.frames++
	if ce := r.log.Check(zap.DebugLevel, "frame"); ce != nil {
		visible := 0
		for _, e := range r.meshes {
			if e.Visible {
				visible++
			}
		}
		ce.Write(zap.Int("frame", r.frames), zap.Int("meshes", len(r.meshes)), zap.Int("visible", visible))
	}
}

// Mesh returns a copy of the state of a mesh.
func (r *Recorder) Mesh(id render.MeshID) (Entry, bool) {
	e, ok := r.meshes[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// IDs returns the registered mesh ids in ascending order.
func (r *Recorder) IDs() []render.MeshID {
	ids := make([]render.MeshID, 0, len(r.meshes))
	for id := range r.meshes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Frames returns the number of rendered frames.
func (r *Recorder) Frames() int {
	return r.frames
}
