package rooms

// Stored field names.
const (
	FieldAvailability = "availability"
	FieldOccupied     = "occupied"
)

// Disabled is the availability value written by a manual lock.
const Disabled = "disabled"

// List labels.
const (
	LabelAvailable   = "room available"
	LabelUnavailable = "room unavailable"
)

// Availability lookup statuses.
const (
	StatusDisabled  = "Room disabled"
	StatusOccupied  = "Room occupied"
	StatusAvailable = "Room available"
)

// Label projects the stored availability value for listings: only a stored
// true reads as available. Locked rooms and rooms without the field read as
// unavailable.
func Label(v any) string {
	if b, ok := v.(bool); ok && b {
		return LabelAvailable
	}
	return LabelUnavailable
}

// Status derives the three-way availability of a room document.
// A lock wins over occupancy.
func Status(data map[string]any) string {
	if s, ok := data[FieldAvailability].(string); ok && s == Disabled {
		return StatusDisabled
	}
	if b, ok := data[FieldOccupied].(bool); ok && b {
		return StatusOccupied
	}
	return StatusAvailable
}
