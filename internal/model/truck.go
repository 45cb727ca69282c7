package model

import "time"

// LayoutSide tags which side layouts a truck carries.  A truck may have no
// layout at all, only a left one, only a right one, or both.  When both are
// present the left layout wins for length derivation.
type LayoutSide int

const (
	SideNone LayoutSide = iota
	SideLeft
	SideRight
	SideBoth
)

// LayoutSection is one configured body-panel width segment.  Sections are
// owned by a side layout and ordered by Position; they have no independent
// lifecycle in this service.
//
// Fields:
//  ID       – primary key identifier.
//  TruckID  – truck the section belongs to.
//  Side     – "LEFT" or "RIGHT" as stored in layout_sections.side.
//  Position – ordering of the section within its side.
//  WidthM   – physical width in meters.
type LayoutSection struct {
	ID       uint64  // layout_sections.id
	TruckID  uint64  // layout_sections.truck_id
	Side     string  // layout_sections.side
	Position int     // layout_sections.position
	WidthM   float64 // layout_sections.width_m
}

// SideLayout is the tagged choice of a truck's side layouts.  Use
// NewSideLayout to build it from the loaded section lists; the tag is derived
// from which sides are non-empty.
type SideLayout struct {
	Side  LayoutSide
	Left  []LayoutSection
	Right []LayoutSection
}

// NewSideLayout derives the tag from the given per-side section lists.
func NewSideLayout(left, right []LayoutSection) SideLayout {
	l := SideLayout{Left: left, Right: right}
	switch {
	case len(left) > 0 && len(right) > 0:
		l.Side = SideBoth
	case len(left) > 0:
		l.Side = SideLeft
	case len(right) > 0:
		l.Side = SideRight
	default:
		l.Side = SideNone
	}
	return l
}

// ActiveSections returns the section list used for length derivation: the
// left layout when present, otherwise the right one, otherwise nil.
func (l SideLayout) ActiveSections() []LayoutSection {
	switch l.Side {
	case SideLeft, SideBoth:
		return l.Left
	case SideRight:
		return l.Right
	}
	return nil
}

// SectionWidths extracts the ordered widths of the active side, ready for the
// length calculator.
func (l SideLayout) SectionWidths() []float64 {
	sections := l.ActiveSections()
	if len(sections) == 0 {
		return nil
	}
	widths := make([]float64, 0, len(sections))
	for _, s := range sections {
		widths = append(widths, s.WidthM)
	}
	return widths
}

// Truck mirrors the 'trucks' table.  The spot token is the owning side of
// the spot relationship: a nil token means the truck is unparked, a non-nil
// token must resolve to a configured (garage, lane, number) triple.  The
// identifying attributes are not relevant to allocation but are carried
// through the audit trail.
//
// Fields:
//  ID            – primary key identifier.
//  PlateNumber   – registration plate.
//  ChassisNumber – chassis serial.
//  Category      – vehicle category.
//  ImplementType – attached implement type.
//  JobName       – current task/job, shown in spot-selection UIs.
//  SpotToken     – occupied spot token (nil = unparked).
//  PosX, PosY    – optional fine-grained position within the spot.
//  Layout        – side layouts used to derive the physical length.
type Truck struct {
	ID            uint64     // trucks.id
	PlateNumber   string     // trucks.plate_number
	ChassisNumber string     // trucks.chassis_number
	Category      string     // trucks.category
	ImplementType string     // trucks.implement_type
	JobName       string     // trucks.job_name
	SpotToken     *string    // trucks.spot_token (nullable)
	PosX          *float64   // trucks.pos_x (nullable)
	PosY          *float64   // trucks.pos_y (nullable)
	Layout        SideLayout // derived from layout_sections
	CreatedAt     time.Time  // trucks.created_at
	UpdatedAt     time.Time  // trucks.updated_at
}
