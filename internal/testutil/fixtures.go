package testutil

// Sample JSON responses for API testing

// SampleStationsResponse is the public station list as a bare array
const SampleStationsResponse = `[
	{"id": 1, "stationCode": "BCT", "stationName": "Mumbai Central", "city": "Mumbai", "state": "Maharashtra", "zone": "WR", "platforms": 9, "status": "ACTIVE"},
	{"id": 2, "stationCode": "NDLS", "stationName": "New Delhi", "city": "Delhi", "state": "Delhi", "zone": "NR", "platforms": 16, "status": "ACTIVE"},
	{"id": 3, "stationCode": "MAS", "stationName": "Chennai Central", "city": "Chennai", "state": "Tamil Nadu", "zone": "SR", "platforms": 17, "status": "ACTIVE"}
]`

// SampleStationsEnvelope is the admin station list wrapped in the response envelope
const SampleStationsEnvelope = `{
	"message": "Stations fetched",
	"status": "SUCCESS",
	"timeStamp": "2024-01-01T10:00:00",
	"data": [
		{"stationId": 11, "stationCode": "PUNE", "stationName": "Pune Junction", "city": "Pune", "state": "Maharashtra", "zone": "CR", "platforms": 6, "status": "active", "isActive": true},
		{"stationId": 12, "stationCode": "HWH", "stationName": "Howrah Junction", "city": "Kolkata", "state": "West Bengal", "zone": "ER", "platforms": 23, "status": "INACTIVE", "active": true}
	]
}`

// SampleSearchResponse is a train schedule search result
const SampleSearchResponse = `{
	"message": "Trains found",
	"status": "SUCCESS",
	"timeStamp": "2024-01-01T10:00:00",
	"data": [
		{
			"trainId": 7,
			"scheduleId": 70,
			"trainNumber": "12951",
			"trainName": "Mumbai Rajdhani",
			"trainType": "RAJDHANI",
			"sourceStationName": "Mumbai Central",
			"destinationStationName": "New Delhi",
			"departureTime": "17:00:00",
			"arrivalTime": "08:32:00",
			"travelDurationMinutes": 932,
			"distanceKm": 1384,
			"classOptions": [
				{"coachTypeId": 1, "coachCode": "3A", "coachName": "AC 3 Tier", "fare": 3010, "availableSeats": 42, "status": "AVAILABLE"},
				{"coachTypeId": 2, "coachCode": "2A", "coachName": "AC 2 Tier", "fare": 4185, "availableSeats": 0, "status": "WL"}
			]
		}
	]
}`

// SampleEmptySearchResponse is a search that found nothing
const SampleEmptySearchResponse = `{"message": "No trains", "status": "SUCCESS", "data": []}`

// SampleMutationResponse is the envelope returned by admin mutations
const SampleMutationResponse = `{"message": "Station saved", "status": "SUCCESS", "data": null}`

// SampleErrorResponse is the backend error body
const SampleErrorResponse = `{
	"status": "FAILED",
	"message": "Station code already exists",
	"timeStamp": "2024-01-01T10:00:00"
}`
