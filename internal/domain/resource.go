package domain

type ResourceKind string

const (
	ResourceKindRoom ResourceKind = "room"
	ResourceKindDesk ResourceKind = "desk"
)

// Zone represents a building area; restricted zones require approval
// for non-privileged requesters.
type Zone struct {
	ID           string
	Name         string
	FloorNo      int
	IsRestricted bool
}

// Resource is a bookable room or desk. ZoneRestricted is derived from
// the owning zone and drives the approval policy.
type Resource struct {
	ID             string
	ZoneID         string
	Kind           ResourceKind
	DisplayName    string
	ZoneRestricted bool
}

// ResourceInfo is the directory-listing projection of a resource.
type ResourceInfo struct {
	ID          string
	Kind        ResourceKind
	DisplayName string
	Zone        string
	FloorNo     int
	Capacity    *int
	IsHotDesk   *bool
}
