// Package nmea reads NMEA 0183 sentence logs into raw track samples.
//
// Positions and altitudes come from GGA fixes. GGA only carries a time of
// day, so the date is taken from the most recent valid RMC sentence; fixes
// logged before the first dated RMC are back-filled with that date. A fix
// whose time of day falls more than rolloverGap behind the previous fix has
// crossed midnight and moves to the next day. Fixes are left without a
// timestamp when the log has no dated RMC at all.
package nmea

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gonmea "github.com/adrianmo/go-nmea"
	"github.com/rs/zerolog"

	"github.com/planbiir/gprofile/internal/track"
)

// rolloverGap is how far a time of day may step backwards before it is
// read as a date change.
const rolloverGap = 12 * time.Hour

// Log is the result of reading one sentence log.
type Log struct {
	Points []track.RawPoint

	Sentences int // sentences parsed, of any type
	Skipped   int // lines that could not be parsed
	NoFix     int // GGA sentences without a position fix
}

// Parse reads the sentence log at filename.
func Parse(filename string, log zerolog.Logger) (*Log, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, log.With().Str("file", filename).Logger())
}

// ParseReader reads sentences line by line. Lines that fail to parse or
// carry a bad checksum are skipped and counted, never fatal.
func ParseReader(r io.Reader, log zerolog.Logger) (*Log, error) {
	var (
		out     Log
		day     time.Time // UTC midnight of the current date
		last    time.Time // timestamp of the latest dated fix
		pending []int     // fixes still waiting for a date
		times   []gonmea.Time
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sentence, err := gonmea.Parse(line)
		if err != nil {
			out.Skipped++
			log.Debug().Err(err).Int("line", lineNo).Msg("skipping unparseable sentence")
			continue
		}
		out.Sentences++

		switch s := sentence.(type) {
		case gonmea.RMC:
			if s.Validity != gonmea.ValidRMC || !s.Date.Valid {
				continue
			}
			d := midnight(s.Date)
			if day.IsZero() && len(pending) > 0 {
				if ts := backfill(out.Points, pending, times, d, stamp(d, s.Time)); !ts.IsZero() {
					last = ts
				}
				pending = nil
			}
			day = d

		case gonmea.GGA:
			if s.FixQuality == gonmea.Invalid {
				out.NoFix++
				continue
			}
			p := track.RawPoint{Lat: s.Latitude, Lon: s.Longitude, Alt: s.Altitude}
			if day.IsZero() {
				pending = append(pending, len(out.Points))
			} else {
				ts := stamp(day, s.Time)
				if !ts.IsZero() && !last.IsZero() && last.Sub(ts) > rolloverGap {
					day = day.AddDate(0, 0, 1)
					ts = stamp(day, s.Time)
				}
				if !ts.IsZero() {
					last = ts
				}
				p.Time = ts
			}
			out.Points = append(out.Points, p)
			times = append(times, s.Time)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read NMEA log: %w", err)
	}

	log.Debug().
		Int("fixes", len(out.Points)).
		Int("sentences", out.Sentences).
		Int("skipped", out.Skipped).
		Int("no_fix", out.NoFix).
		Msg("read NMEA log")

	return &out, nil
}

// backfill dates the pending fixes from the first dated RMC, walking
// backwards from anchor so a midnight crossed before that RMC moves the earlier
// fixes to the previous day. It returns the timestamp of the latest fix.
func backfill(points []track.RawPoint, pending []int, times []gonmea.Time, day, anchor time.Time) time.Time {
	var latest time.Time
	next := anchor
	for k := len(pending) - 1; k >= 0; k-- {
		i := pending[k]
		ts := stamp(day, times[i])
		if ts.IsZero() {
			continue
		}
		if !next.IsZero() && ts.Sub(next) > rolloverGap {
			day = day.AddDate(0, 0, -1)
			ts = stamp(day, times[i])
		}
		points[i].Time = ts
		if latest.IsZero() {
			latest = ts
		}
		next = ts
	}
	return latest
}

func midnight(d gonmea.Date) time.Time {
	return time.Date(2000+d.YY, time.Month(d.MM), d.DD, 0, 0, 0, 0, time.UTC)
}

// stamp places a GGA time of day on day, in UTC. A missing time of day yields
// the zero time.
func stamp(day time.Time, t gonmea.Time) time.Time {
	if day.IsZero() || !t.Valid {
		return time.Time{}
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour, t.Minute, t.Second, t.Millisecond*int(time.Millisecond), time.UTC)
}
