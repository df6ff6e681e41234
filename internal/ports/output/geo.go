package output

import "context"

// GeoResult is a successful IP lookup: the looked-up address and the ISO
// 3166-1 alpha-2 country code it resolved to.
type GeoResult struct {
	IP          string
	CountryCode string
}

// Geolocator resolves a connecting address to a country, used to pick an
// initial language for players without a stored preference. Lookup returns
// domain.ErrGeolocationDisabled when no token is configured.
type Geolocator interface {
	Lookup(ctx context.Context, ip string) (GeoResult, error)
}
