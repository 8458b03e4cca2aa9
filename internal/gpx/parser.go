// Package gpx reads GPX files into raw track samples.
package gpx

import (
	"fmt"
	"io"
	"os"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/planbiir/gprofile/internal/track"
)

// File is the track content of one GPX document.
type File struct {
	Name     string // first named track, else the document name
	Tracks   int
	Segments int
	Points   []track.RawPoint

	// MissingElevation counts points without <ele>; they are read as 0 m.
	MissingElevation int
	// FromRoutes is set when the file had no track points and the route
	// points were used instead.
	FromRoutes bool
}

// Parse reads and parses a GPX file
func Parse(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader) (*File, error) {
	doc, err := gpxgo.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}
	return FromGPX(doc), nil
}

// FromGPX flattens every track point of doc, in document order.
func FromGPX(doc *gpxgo.GPX) *File {
	f := &File{
		Name:   doc.Name,
		Tracks: len(doc.Tracks),
	}

	named := false
	for _, trk := range doc.Tracks {
		if !named && trk.Name != "" {
			f.Name = trk.Name
			named = true
		}
		f.Segments += len(trk.Segments)
		for _, seg := range trk.Segments {
			for i := range seg.Points {
				f.add(&seg.Points[i])
			}
		}
	}

	if len(f.Points) > 0 {
		return f
	}

	for _, rte := range doc.Routes {
		if f.Name == "" {
			f.Name = rte.Name
		}
		for i := range rte.Points {
			f.add(&rte.Points[i])
			f.FromRoutes = true
		}
	}
	return f
}

func (f *File) add(p *gpxgo.GPXPoint) {
	rp := track.RawPoint{
		Lat:  p.Latitude,
		Lon:  p.Longitude,
		Time: p.Timestamp,
	}
	if p.Elevation.NotNull() {
		rp.Alt = p.Elevation.Value()
	} else {
		f.MissingElevation++
	}
	f.Points = append(f.Points, rp)
}
