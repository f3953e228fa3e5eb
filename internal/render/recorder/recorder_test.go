package recorder

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/dicebox/internal/render"
	"github.com/Faultbox/dicebox/pkg/mesh"
	"github.com/Faultbox/dicebox/pkg/polyhedron"
)

func cube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.ForDescriptor(polyhedron.Cube(), 1)
	require.NoError(t, err)
	return m
}

func TestRecorderTracksMeshes(t *testing.T) {
	r := New(nil)
	m := cube(t)
	materials := []string{"", "", "1", "2", "3", "4", "5", "6"}

	r.AddMesh(3, m, materials, false)
	r.AddMesh(1, m, materials, true)
	materials[2] = "changed"

	assert.Equal(t, []render.MeshID{1, 3}, r.IDs())

	e, ok := r.Mesh(3)
	require.True(t, ok)
	assert.Same(t, m, e.Mesh)
	assert.False(t, e.Visible)
	assert.Equal(t, 1.0, e.Opacity)
	assert.Equal(t, mgl64.QuatIdent(), e.Rotation)
	assert.Equal(t, "1", e.Materials[2], "materials are copied")

	rot := mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})
	r.SetTransform(1, mgl64.Vec3{1, 2, 3}, rot)
	r.SetOpacity(1, 0.25)
	e, _ = r.Mesh(1)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, e.Position)
	assert.Equal(t, rot, e.Rotation)
	assert.Equal(t, 0.25, e.Opacity)

	r.RemoveMesh(3)
	_, ok = r.Mesh(3)
	assert.False(t, ok)

	// Updates to unknown meshes are ignored.
	r.SetOpacity(3, 0.5)
	r.SetTransform(3, mgl64.Vec3{}, mgl64.QuatIdent())
	assert.Equal(t, []render.MeshID{1}, r.IDs())
}

func TestRecorderLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(zap.New(core))

	r.AddMesh(7, cube(t), nil, true)
	r.Render()
	r.Render()
	r.RemoveMesh(8)

	assert.Equal(t, 2, r.Frames())
	assert.Equal(t, 1, logs.FilterMessage("mesh added").Len())
	frames := logs.FilterMessage("frame").All()
	require.Len(t, frames, 2)
	assert.Equal(t, int64(1), frames[1].ContextMap()["visible"])
	assert.Equal(t, 1, logs.FilterMessage("removing unknown mesh").Len())
}
