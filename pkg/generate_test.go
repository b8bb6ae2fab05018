package pkg

import (
	"path/filepath"
	"testing"

	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		shape     options.Shape
		intensity bool
		storage   pcd.StorageMode
		layout    pcd.FieldLayout
		points    int
	}{
		{name: "ellipse", shape: options.ShapeEllipse, storage: pcd.StorageBinary, layout: pcd.LayoutXYZ, points: 52},
		{name: "box with intensity", shape: options.ShapeBox, intensity: true, storage: pcd.StorageASCII, layout: pcd.LayoutXYZI, points: 24},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), "nested", "out.pcd")
			opts := &options.Options{
				Storage: tt.storage,
				GenerateOptions: &options.GenerateOptions{
					Output:    output,
					Shape:     tt.shape,
					Step:      0.5,
					Intensity: tt.intensity,
				},
			}
			require.NoError(t, NewGenerator().Run(opts))

			cloud, err := pcd.ReadFile(output, pcd.DecodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.storage, cloud.Header.Storage)
			assert.Equal(t, tt.layout, cloud.Header.Layout)
			assert.Equal(t, tt.points, cloud.Header.PointCount)
			if tt.intensity {
				assert.Equal(t, cloud.Points.At(0, 2), cloud.Points.At(0, 3))
			}
		})
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	assert.Error(t, NewGenerator().Run(&options.Options{}))

	opts := &options.Options{
		Storage:         pcd.StorageBinary,
		GenerateOptions: &options.GenerateOptions{Output: filepath.Join(t.TempDir(), "x.pcd"), Shape: "", Step: 0.5},
	}
	assert.ErrorContains(t, NewGenerator().Run(opts), "unknown shape")
}
