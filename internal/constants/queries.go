package constants

// Written with ? placeholders; repositories pass them through sqlx.Rebind.
const (
	ListAirportsByCode = `
	SELECT id, icao, iata, name, country_code, city, state, latitude, longitude
	FROM airports
	ORDER BY icao ASC, id ASC
	`

	ListAirportsByState = `
	SELECT id, icao, iata, name, country_code, city, state, latitude, longitude
	FROM airports
	WHERE state = ?
	ORDER BY icao ASC, id ASC
	`

	CountAirports = `
	SELECT COUNT(*) FROM airports
	`
)
