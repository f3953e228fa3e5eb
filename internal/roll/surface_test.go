package roll

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Faultbox/dicebox/internal/config"
	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/internal/physics/kinematic"
	"github.com/Faultbox/dicebox/internal/render"
	rendermock "github.com/Faultbox/dicebox/internal/render/mock"
	"github.com/Faultbox/dicebox/pkg/mesh"
)

func TestSurfaceSeesForcedFace(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := rendermock.NewMockSurface(ctrl)
	cfg := config.Default()
	s := New(cfg, kinematic.New(cfg), surface, WithRand(rand.New(rand.NewPCG(3, 4))))

	var materials []string
	gomock.InOrder(
		surface.EXPECT().AddMesh(render.MeshID(1), gomock.Not(gomock.Nil()), gomock.Len(8), false),
		surface.EXPECT().RemoveMesh(render.MeshID(1)),
		surface.EXPECT().AddMesh(render.MeshID(2), gomock.Not(gomock.Nil()), gomock.Len(8), true).
			Do(func(_ render.MeshID, _ *mesh.Mesh, m []string, _ bool) { materials = m }),
	)
	surface.EXPECT().SetTransform(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	surface.EXPECT().Render().AnyTimes()

	require.NoError(t, s.Roll([]dice.Request{req("d6", 4)}))
	rolled, ok := find(untilRolled(t, s), EventRolled)
	require.True(t, ok)

	assert.Equal(t, 4, rolled.Total)
	assert.Equal(t, "4", materials[rolled.Results[0].Slot+1])
}

func TestSurfaceResetWhileProbing(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := rendermock.NewMockSurface(ctrl)
	cfg := config.Default()
	s := New(cfg, kinematic.New(cfg), surface, WithRand(rand.New(rand.NewPCG(5, 6))))

	surface.EXPECT().AddMesh(gomock.Any(), gomock.Any(), gomock.Any(), false).Times(2)
	surface.EXPECT().SetTransform(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	surface.EXPECT().RemoveMesh(render.MeshID(1))
	surface.EXPECT().RemoveMesh(render.MeshID(2))
	surface.EXPECT().Render()

	require.NoError(t, s.Roll([]dice.Request{req("d12", 11), req("d4", 2)}))
	s.Reset()

	events := s.Tick(frame)
	require.Len(t, events, 1)
	assert.Equal(t, EventResetDone, events[0].Kind)
}
