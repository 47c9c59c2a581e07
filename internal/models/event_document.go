package models

import "time"

// EventDocument is the rich nested event payload submitted by clients and
// persisted verbatim in the events table's event_data column.
type EventDocument struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Website      *string      `json:"website"`
	EventTypeID  int64        `json:"event_type_id"`
	DateInfo     EventDates   `json:"date_info"`
	LocationInfo Location     `json:"location_info"`
	Amenities    Amenities    `json:"amenities"`
	CampingInfo  *CampingInfo `json:"camping_info"`
}

type EventDates struct {
	StartDate             *time.Time `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	SingleDay             bool       `json:"single_day"`
	EarlyArrivalAvailable bool       `json:"early_arrival_available"`
	EarlyArrivalDate      *string    `json:"early_arrival_date"`
	LateDeparture         bool       `json:"late_departure_available"`
}

type Location struct {
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	VenueName   *string `json:"venue_name"`
	ParkingInfo *string `json:"parking_info"`
}

type Amenities struct {
	Bathrooms          bool    `json:"bathrooms"`
	Showers            bool    `json:"showers"`
	PotableWater       bool    `json:"potable_water"`
	Wifi               bool    `json:"wifi"`
	CellServiceQuality *string `json:"cell_service_quality"`
	FirewoodAvailable  bool    `json:"firewood_available"`
	IceAvailable       bool    `json:"ice_available"`
	TrashService       bool    `json:"trash_service"`
	Recycling          bool    `json:"recycling"`
	Laundry            bool    `json:"laundry"`
}

type CampingInfo struct {
	CampingAllowed       bool                  `json:"camping_allowed"`
	WalkingDistance      bool                  `json:"walking_distance"`
	TentCamping          bool                  `json:"tent_camping"`
	RvCamping            RvCampingOptions      `json:"rv_camping"`
	VehicleCamping       VehicleCampingOptions `json:"vehicle_camping"`
	ReservationsRequired bool                  `json:"campsite_reservations_required"`
	PrimitiveCamping     bool                  `json:"primitive_camping"`
	DevelopedCampsites   bool                  `json:"developed_campsites"`
	MaxStayNights        *int                  `json:"max_stay_nights"`
	PetFriendly          bool                  `json:"pet_friendly"`
	QuietHours           *string               `json:"quiet_hours"`
	FiresAllowed         bool                  `json:"fires_allowed"`
	GeneratorOptions     *GeneratorOptions     `json:"generator_options"`
}

type RvCampingOptions struct {
	Allowed              bool     `json:"allowed"`
	ClassAAllowed        bool     `json:"class_a_allowed"`
	ClassBAllowed        bool     `json:"class_b_allowed"`
	ClassCAllowed        bool     `json:"class_c_allowed"`
	TravelTrailerAllowed bool     `json:"travel_trailers_allowed"`
	FifthWheelAllowed    bool     `json:"fifth_wheel_allowed"`
	MaxLengthFeet        *int     `json:"max_length_feet"`
	MaxWidthFeet         *int     `json:"max_width_feet"`
	HookupsAvailable     *Hookups `json:"hookups_available"`
	DumpStation          bool     `json:"dump_station"`
}

type VehicleCampingOptions struct {
	VanCamping        bool `json:"van_camping"`
	CarCamping        bool `json:"car_camping"`
	TruckCamping      bool `json:"truck_camping"`
	RooftopTentAllowed bool `json:"rooftop_tent_allowed"`
}

type Hookups struct {
	Electric   bool    `json:"electric"`
	Water      bool    `json:"water"`
	Sewer      bool    `json:"sewer"`
	AmpService *string `json:"amp_service"`
}

type GeneratorOptions struct {
	GeneratorsAllowed        bool     `json:"generators_allowed"`
	QuietHours               *string  `json:"quiet_hours"`
	MaxDecibelLimit          *int     `json:"max_decibel_limit"`
	InverterGeneratorsOnly   bool     `json:"inverter_generators_only"`
	PropaneAllowed           bool     `json:"propane_generators_allowed"`
	GasolineAllowed          bool     `json:"gasoline_generators_allowed"`
	DieselAllowed            bool     `json:"diesel_generators_allowed"`
	DesignatedGeneratorAreas bool     `json:"designated_generator_areas"`
	DistanceFromNeighborsFt  *int     `json:"distance_from_neighbors_feet"`
	FuelStorageRestrictions  *string  `json:"fuel_storage_restrictions"`
}
