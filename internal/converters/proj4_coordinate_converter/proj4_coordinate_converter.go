package proj4_coordinate_converter

import (
	"fmt"
	"sync"

	"github.com/ecopia-map/pcd_codec/internal/converters"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/golang/glog"
	proj "github.com/xeonx/proj4"
)

// Converts point coordinates between two proj4 definitions, e.g.
// "+proj=longlat +datum=WGS84 +no_defs" and "+proj=geocent +datum=WGS84".
// Lat/long systems are read and written in degrees.
type proj4CoordinateConverter struct {
	source *proj.Proj
	target *proj.Proj
	sync.Mutex
}

func NewProj4CoordinateConverter(sourceDefinition, targetDefinition string) (converters.CoordinateConverter, error) {
	source, err := proj.InitPlus(sourceDefinition)
	if err != nil {
		return nil, fmt.Errorf("invalid source projection %q: %w", sourceDefinition, err)
	}

	target, err := proj.InitPlus(targetDefinition)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("invalid target projection %q: %w", targetDefinition, err)
	}

	return &proj4CoordinateConverter{
		source: source,
		target: target,
	}, nil
}

// Returns a copy of the table with x, y, z expressed in the target system
func (cc *proj4CoordinateConverter) ConvertCoordinates(table *pcd.PointTable) (*pcd.PointTable, error) {
	if table.Cols() < 3 {
		return nil, fmt.Errorf("coordinate conversion needs x, y and z columns, got %d", table.Cols())
	}

	x, y, z := table.Column(0), table.Column(1), table.Column(2)
	if cc.source.IsLatLong() {
		for i := range x {
			x[i] = proj.DegToRad(x[i])
			y[i] = proj.DegToRad(y[i])
		}
	}

	// proj4 handles are not safe for concurrent use
	cc.Lock()
	err := proj.TransformRaw(cc.source, cc.target, x, y, z)
	cc.Unlock()
	if err != nil {
		return nil, err
	}

	if cc.target.IsLatLong() {
		for i := range x {
			x[i] = proj.RadToDeg(x[i])
			y[i] = proj.RadToDeg(y[i])
		}
	}

	out := table.Clone()
	for i := 0; i < out.Len(); i++ {
		out.Set(i, 0, x[i])
		out.Set(i, 1, y[i])
		out.Set(i, 2, z[i])
	}

	if glog.V(1) {
		glog.Infof("proj4: converted %d points", out.Len())
	}
	return out, nil
}

// Releases the proj4 handles
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()
	cc.source.Close()
	cc.target.Close()
}
