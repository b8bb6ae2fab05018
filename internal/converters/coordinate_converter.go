package converters

import "github.com/ecopia-map/pcd_codec/internal/pcd"

// CoordinateConverter maps the x, y and z columns of a point table from one
// reference system into another. Extra columns are carried over unchanged.
type CoordinateConverter interface {
	ConvertCoordinates(table *pcd.PointTable) (*pcd.PointTable, error)
	Cleanup()
}
