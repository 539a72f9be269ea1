package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidArgument is returned when a coordinate, elevation or time zone is
// out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// Location is a named point on the Earth with an elevation and the time zone
// used to present local times there. The zero value is not useful; see New.
//
// A Location may be changed after construction with its setters. Calendars
// hold a pointer to the Location they were built with, so callers that share
// a Location with other goroutines must Clone it before changing it.
type Location struct {
	name      string
	latitude  float64
	longitude float64
	elevation float64
	tz        TimeZone
}

// New creates a Location after validating its coordinates. Latitude must be
// within [-90, 90], longitude within [-180, 180] and elevation (in meters)
// must not be negative. A nil time zone is treated as UTC.
func New(name string, latitude, longitude, elevation float64, tz TimeZone) (*Location, error) {
	l := &Location{name: name}
	if err := l.SetLatitude(latitude); err != nil {
		return nil, err
	}
	if err := l.SetLongitude(longitude); err != nil {
		return nil, err
	}
	if err := l.SetElevation(elevation); err != nil {
		return nil, err
	}
	l.SetTimeZone(tz)
	return l, nil
}

// Greenwich is the default location: the Royal Observatory at sea level in
// UTC.
func Greenwich() *Location {
	return &Location{
		name:      "Greenwich, England",
		latitude:  51.4772,
		longitude: 0,
		tz:        UTC,
	}
}

func (l *Location) Name() string       { return l.name }
func (l *Location) Latitude() float64  { return l.latitude }
func (l *Location) Longitude() float64 { return l.longitude }

// Elevation is the height above sea level in meters.
func (l *Location) Elevation() float64 { return l.elevation }
func (l *Location) TimeZone() TimeZone { return l.tz }

func (l *Location) SetName(name string) { l.name = name }

func (l *Location) SetLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("latitude %v must be between -90 and 90: %w", latitude, ErrInvalidArgument)
	}
	l.latitude = latitude
	return nil
}

func (l *Location) SetLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("longitude %v must be between -180 and 180: %w", longitude, ErrInvalidArgument)
	}
	l.longitude = longitude
	return nil
}

func (l *Location) SetElevation(elevation float64) error {
	if math.IsNaN(elevation) || elevation < 0 {
		return fmt.Errorf("elevation %v cannot be negative: %w", elevation, ErrInvalidArgument)
	}
	l.elevation = elevation
	return nil
}

// SetTimeZone replaces the time zone. A nil zone means UTC.
func (l *Location) SetTimeZone(tz TimeZone) {
	if tz == nil {
		tz = UTC
	}
	l.tz = tz
}

// SetLatitudeDMS sets the latitude from degrees, minutes and seconds and a
// direction of "N" or "S".
func (l *Location) SetLatitudeDMS(degrees, minutes int, seconds float64, direction string) error {
	lat, err := fromDMS(degrees, minutes, seconds)
	if err != nil {
		return err
	}
	switch strings.ToUpper(direction) {
	case "N":
	case "S":
		lat = -lat
	default:
		return fmt.Errorf("latitude direction %q must be N or S: %w", direction, ErrInvalidArgument)
	}
	return l.SetLatitude(lat)
}

// SetLongitudeDMS sets the longitude from degrees, minutes and seconds and a
// direction of "E" or "W".
func (l *Location) SetLongitudeDMS(degrees, minutes int, seconds float64, direction string) error {
	lon, err := fromDMS(degrees, minutes, seconds)
	if err != nil {
		return err
	}
	switch strings.ToUpper(direction) {
	case "E":
	case "W":
		lon = -lon
	default:
		return fmt.Errorf("longitude direction %q must be E or W: %w", direction, ErrInvalidArgument)
	}
	return l.SetLongitude(lon)
}

func fromDMS(degrees, minutes int, seconds float64) (float64, error) {
	if degrees < 0 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("%d°%d'%v\" is not a valid angle: %w", degrees, minutes, seconds, ErrInvalidArgument)
	}
	return float64(degrees) + float64(minutes)/60 + seconds/3600, nil
}

// Clone returns an independent copy of l. The time zone is shared since
// implementations are expected to be immutable.
func (l *Location) Clone() *Location {
	c := *l
	return &c
}

// LocalMeanTimeOffset is the difference between local mean time at the
// location's longitude and the standard time of its time zone today. It is
// four minutes per degree of longitude minus the zone's raw (non DST) offset,
// at millisecond precision.
func (l *Location) LocalMeanTimeOffset() time.Duration {
	return l.LocalMeanTimeOffsetOn(time.Now())
}

// LocalMeanTimeOffsetOn is LocalMeanTimeOffset against the standard offset
// the zone had in the year of date.
func (l *Location) LocalMeanTimeOffsetOn(date time.Time) time.Duration {
	lmt := time.Duration(l.longitude * 4 * float64(time.Minute))
	return (lmt - l.tz.RawOffset(date)).Round(time.Millisecond)
}

func (l *Location) String() string {
	return fmt.Sprintf("%s (%.5f, %.5f, %.0fm, %s)",
		l.name, l.latitude, l.longitude, l.elevation, l.tz.ID())
}
