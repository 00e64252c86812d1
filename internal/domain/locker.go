package domain

// LockerRole describes a locker's role relative to a single order. The role
// is computed, never stored.
type LockerRole string

// List of locker roles relative to an order.
const (
	RoleSource       LockerRole = "source"
	RoleDestination  LockerRole = "destination"
	RoleIntermediate LockerRole = "intermediate"
	RoleUnrelated    LockerRole = "unrelated"
)

// Position is a geographic point.
type Position struct {
	Lat float64
	Lon float64
}

// Locker represents a fixed locker hub in the delivery network.
type Locker struct {
	ID       string
	Name     string
	Position Position
	Address  string
}

// RoleFor computes the role of a locker relative to an order. A locker is
// intermediate when some segment ends at it and another starts from it.
func RoleFor(o *Order, lockerID string) LockerRole {
	if lockerID == "" {
		return RoleUnrelated
	}
	switch lockerID {
	case o.SourceLockerID:
		return RoleSource
	case o.DestLockerID:
		return RoleDestination
	}
	for _, s := range o.Segments {
		if s.SourceLockerID == lockerID || s.DestLockerID == lockerID {
			return RoleIntermediate
		}
	}
	return RoleUnrelated
}
