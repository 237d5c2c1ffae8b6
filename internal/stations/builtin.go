package stations

import (
	"context"

	"github.com/orrs-rail/orrs-cli/internal/models"
)

// builtin is the offline catalogue of major stations, busiest first.
var builtin = []models.Station{
	{Code: "NDLS", Name: "New Delhi", City: "Delhi", State: "Delhi", Zone: "NR", Platforms: 16},
	{Code: "CSMT", Name: "Chhatrapati Shivaji Maharaj Terminus", City: "Mumbai", State: "Maharashtra", Zone: "CR", Platforms: 18},
	{Code: "BCT", Name: "Mumbai Central", City: "Mumbai", State: "Maharashtra", Zone: "WR", Platforms: 7},
	{Code: "HWH", Name: "Howrah Junction", City: "Howrah", State: "West Bengal", Zone: "ER", Platforms: 23},
	{Code: "MAS", Name: "Chennai Central", City: "Chennai", State: "Tamil Nadu", Zone: "SR", Platforms: 12},
	{Code: "SBC", Name: "KSR Bengaluru", City: "Bengaluru", State: "Karnataka", Zone: "SWR", Platforms: 10},
	{Code: "SC", Name: "Secunderabad Junction", City: "Hyderabad", State: "Telangana", Zone: "SCR", Platforms: 10},
	{Code: "PUNE", Name: "Pune Junction", City: "Pune", State: "Maharashtra", Zone: "CR", Platforms: 6},
	{Code: "ADI", Name: "Ahmedabad Junction", City: "Ahmedabad", State: "Gujarat", Zone: "WR", Platforms: 12},
	{Code: "JP", Name: "Jaipur Junction", City: "Jaipur", State: "Rajasthan", Zone: "NWR", Platforms: 8},
	{Code: "LKO", Name: "Lucknow Charbagh", City: "Lucknow", State: "Uttar Pradesh", Zone: "NR", Platforms: 9},
	{Code: "PNBE", Name: "Patna Junction", City: "Patna", State: "Bihar", Zone: "ECR", Platforms: 10},
	{Code: "BPL", Name: "Bhopal Junction", City: "Bhopal", State: "Madhya Pradesh", Zone: "WCR", Platforms: 6},
	{Code: "NGP", Name: "Nagpur Junction", City: "Nagpur", State: "Maharashtra", Zone: "CR", Platforms: 8},
	{Code: "CNB", Name: "Kanpur Central", City: "Kanpur", State: "Uttar Pradesh", Zone: "NCR", Platforms: 10},
	{Code: "BSB", Name: "Varanasi Junction", City: "Varanasi", State: "Uttar Pradesh", Zone: "NR", Platforms: 9},
	{Code: "PRYJ", Name: "Prayagraj Junction", City: "Prayagraj", State: "Uttar Pradesh", Zone: "NCR", Platforms: 10},
	{Code: "GHY", Name: "Guwahati", City: "Guwahati", State: "Assam", Zone: "NFR", Platforms: 7},
	{Code: "BBS", Name: "Bhubaneswar", City: "Bhubaneswar", State: "Odisha", Zone: "ECoR", Platforms: 6},
	{Code: "VSKP", Name: "Visakhapatnam Junction", City: "Visakhapatnam", State: "Andhra Pradesh", Zone: "ECoR", Platforms: 8},
	{Code: "TVC", Name: "Thiruvananthapuram Central", City: "Thiruvananthapuram", State: "Kerala", Zone: "SR", Platforms: 5},
	{Code: "ERS", Name: "Ernakulam Junction", City: "Kochi", State: "Kerala", Zone: "SR", Platforms: 6},
	{Code: "CBE", Name: "Coimbatore Junction", City: "Coimbatore", State: "Tamil Nadu", Zone: "SR", Platforms: 6},
	{Code: "MAO", Name: "Madgaon Junction", City: "Madgaon", State: "Goa", Zone: "KR", Platforms: 3},
	{Code: "CDG", Name: "Chandigarh", City: "Chandigarh", State: "Chandigarh", Zone: "NR", Platforms: 6},
	{Code: "ASR", Name: "Amritsar Junction", City: "Amritsar", State: "Punjab", Zone: "NR", Platforms: 7},
	{Code: "JAT", Name: "Jammu Tawi", City: "Jammu", State: "Jammu and Kashmir", Zone: "NR", Platforms: 3},
	{Code: "NZM", Name: "Hazrat Nizamuddin", City: "Delhi", State: "Delhi", Zone: "NR", Platforms: 7},
	{Code: "SDAH", Name: "Sealdah", City: "Kolkata", State: "West Bengal", Zone: "ER", Platforms: 21},
}

// Builtin returns a copy of the offline station catalogue.
func Builtin() []models.Station {
	out := make([]models.Station, len(builtin))
	copy(out, builtin)
	for i := range out {
		out[i].Status = models.StatusActive
	}
	return out
}

// BuiltinSource serves the offline catalogue.
type BuiltinSource struct{}

// Stations implements Source.
func (BuiltinSource) Stations(context.Context) ([]models.Station, error) {
	return Builtin(), nil
}

// Name implements Source.
func (BuiltinSource) Name() string { return "builtin" }
