package pcd

import "os"

// PointCloud is the result of decoding one PCD file.
type PointCloud struct {
	Header Header
	Points *PointTable
}

// Positions is the x, y, z view of the stored points.
func (c *PointCloud) Positions() *PointTable {
	return c.Points.Positions()
}

// ReadFile decodes the PCD file at path. The file is closed on every return.
func ReadFile(path string, opts DecodeOptions) (*PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	h, table, err := Decode(f, opts)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}

	return &PointCloud{Header: h, Points: table}, nil
}

// WriteFile encodes h and t into a new file at path, truncating any existing
// file. Nothing is created when the arguments are rejected.
func WriteFile(path string, h Header, t *PointTable, storage StorageMode) (err error) {
	if err := validateEncodeArgs(h, t, storage); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if err := Encode(f, h, t, storage); err != nil {
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = path
		}
		return err
	}
	return nil
}
