package db

// Identifiers shared by more than one service package. Queries that touch
// these build their SQL from the constant so the packages cannot drift
// onto different table names.
const (
	// RouteDestinationTable is the route↔destination pivot, written by the
	// route service and counted by destination statistics.
	RouteDestinationTable = "route_destination"
)
