package api

import "strconv"

const (
	// BaseURL is where the reservation backend listens in a default install
	BaseURL = "http://localhost:8080"

	// EndpointStations lists every station (public, no token needed)
	EndpointStations = "/api/stations"

	// EndpointSearch searches train schedules
	// Body: fromStation, toStation, journeyDate (YYYY-MM-DD)
	EndpointSearch = "/schedule/search"

	// EndpointAdminStations is the admin station collection
	EndpointAdminStations = "/admin/stations"
)

// adminStationPath returns the path of a single admin station.
func adminStationPath(id int64) string {
	return EndpointAdminStations + "/" + strconv.FormatInt(id, 10)
}

// adminStationStatusPath returns the status sub-resource of an admin station.
func adminStationStatusPath(id int64) string {
	return adminStationPath(id) + "/status"
}
