package controllers

import (
	"Backend-GeoAttend/src/services/checkin"
	"Backend-GeoAttend/src/services/registrations"
	"Backend-GeoAttend/src/services/sessions"
	"Backend-GeoAttend/src/services/venues"
)

// service instances ที่ถูก wire จาก main ตอน start
var (
	sessionService *sessions.Service
	venueService   *venues.Service
	regLookup      registrations.Lookup
	verifier       *checkin.Verifier
)

// Init wires the controller layer to its services. Called once from main
// after the database connections are up.
func Init(s *sessions.Service, v *venues.Service, r registrations.Lookup, cv *checkin.Verifier) {
	sessionService = s
	venueService = v
	regLookup = r
	verifier = cv
}
