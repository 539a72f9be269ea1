package geo

import (
	"math"
)

// WGS-84 reference ellipsoid.
const (
	semiMajorAxis = 6378137.0    // meters
	semiMinorAxis = 6356752.3142 // meters
	flattening    = 1 / 298.257223563

	vincentyTolerance     = 1e-12 // radians
	vincentyMaxIterations = 20

	// Radius used for rhumb line distances.
	mercatorRadius = 6378137.0 // meters
	// Below this difference in projected latitude the rhumb line is treated as
	// running due east or west.
	rhumbFlatTolerance = 1e-10
)

// Inverse is the solution to the inverse geodesic problem between two
// points on the ellipsoid.
type Inverse struct {
	// Distance along the ellipsoid in meters.
	Distance float64
	// InitialBearing is the forward azimuth at the first point in degrees
	// within [0, 360).
	InitialBearing float64
	// FinalBearing is the forward azimuth on arrival at the second point.
	FinalBearing float64

	// Iterations used to converge on λ.
	Iterations int
	// Converged is false when the iteration limit was reached, typically for
	// nearly antipodal points. The other fields then hold the estimate from
	// the last iteration.
	Converged bool
}

// Vincenty solves the inverse geodesic problem from a to b using Vincenty's
// iterative formula.
func Vincenty(a, b *Location) Inverse {
	L := radians(b.longitude - a.longitude)
	U1 := math.Atan((1 - flattening) * math.Tan(radians(a.latitude)))
	U2 := math.Atan((1 - flattening) * math.Tan(radians(b.latitude)))
	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	var sinLambda, cosLambda, sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	lambda := L
	iterations, converged := 0, false
	for iterations < vincentyMaxIterations {
		iterations++
		sinLambda, cosLambda = math.Sincos(lambda)
		sinSigma = math.Sqrt(sq(cosU2*sinLambda) + sq(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			// coincident points
			return Inverse{Iterations: iterations, Converged: true}
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		if math.IsNaN(cos2SigmaM) {
			// equatorial line, cosSqAlpha is 0
			cos2SigmaM = 0
		}
		C := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		lambdaP := lambda
		lambda = L + (1-C)*flattening*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-lambdaP) <= vincentyTolerance {
			converged = true
			break
		}
	}

	uSq := cosSqAlpha * (sq(semiMajorAxis) - sq(semiMinorAxis)) / sq(semiMinorAxis)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	fwd := math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
	rev := math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)
	return Inverse{
		Distance:       semiMinorAxis * A * (sigma - deltaSigma),
		InitialBearing: normalizeBearing(degrees(fwd)),
		FinalBearing:   normalizeBearing(degrees(rev)),
		Iterations:     iterations,
		Converged:      converged,
	}
}

// GeodesicDistance is the distance in meters from a to b along the
// ellipsoid.
func GeodesicDistance(a, b *Location) float64 {
	return Vincenty(a, b).Distance
}

// GeodesicInitialBearing is the bearing in degrees to set out on from a to
// follow the shortest path to b.
func GeodesicInitialBearing(a, b *Location) float64 {
	return Vincenty(a, b).InitialBearing
}

// GeodesicFinalBearing is the bearing in degrees on arrival at b when
// following the shortest path from a.
func GeodesicFinalBearing(a, b *Location) float64 {
	return Vincenty(a, b).FinalBearing
}

// RhumbLineBearing is the constant bearing in degrees of the loxodrome from a
// to b.
func RhumbLineBearing(a, b *Location) float64 {
	dLon := shortestLongitude(radians(b.longitude - a.longitude))
	dPsi := projectedLatitude(b.latitude) - projectedLatitude(a.latitude)
	return normalizeBearing(degrees(math.Atan2(dLon, dPsi)))
}

// RhumbLineDistance is the length in meters of the loxodrome from a to b.
func RhumbLineDistance(a, b *Location) float64 {
	dLat := radians(b.latitude - a.latitude)
	dLon := math.Abs(shortestLongitude(radians(b.longitude - a.longitude)))
	dPsi := projectedLatitude(b.latitude) - projectedLatitude(a.latitude)

	var q float64
	if math.Abs(dPsi) < rhumbFlatTolerance {
		q = math.Cos(radians(a.latitude))
	} else {
		q = dLat / dPsi
	}
	return math.Sqrt(dLat*dLat+q*q*dLon*dLon) * mercatorRadius
}

// projectedLatitude is the Mercator ψ for a latitude in degrees.
func projectedLatitude(lat float64) float64 {
	return math.Log(math.Tan(radians(lat)/2 + math.Pi/4))
}

// shortestLongitude wraps a longitude difference in radians so that paths
// cross the antimeridian when that is shorter.
func shortestLongitude(dLon float64) float64 {
	switch {
	case dLon > math.Pi:
		return dLon - 2*math.Pi
	case dLon < -math.Pi:
		return dLon + 2*math.Pi
	}
	return dLon
}

func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func sq(x float64) float64        { return x * x }
