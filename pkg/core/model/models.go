package model

// Role is a staff member's skill/seniority tier on the ward
type Role string

const (
	RoleChargeNurse     Role = "CN"
	RoleRegisteredNurse Role = "RN"
	RoleNursingAssist   Role = "NA"

	// RoleUnknown is used when an assignment references a staff ID missing from the roster
	RoleUnknown Role = "unknown"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleChargeNurse, RoleRegisteredNurse, RoleNursingAssist:
		return true
	}
	return false
}

// ExperienceLevel is an ordered experience tier
type ExperienceLevel string

const (
	ExperienceNewbie ExperienceLevel = "NEWBIE"
	ExperienceJunior ExperienceLevel = "JUNIOR"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceExpert ExperienceLevel = "EXPERT"
)

func (e ExperienceLevel) IsValid() bool {
	return e.Rank() >= 0
}

// Rank returns the position of the level in the NEWBIE..EXPERT ordering, or -1 if unknown
func (e ExperienceLevel) Rank() int {
	switch e {
	case ExperienceNewbie:
		return 0
	case ExperienceJunior:
		return 1
	case ExperienceSenior:
		return 2
	case ExperienceExpert:
		return 3
	}
	return -1
}

// IsSenior reports whether the level is SENIOR or above
func (e ExperienceLevel) IsSenior() bool {
	return e.Rank() >= ExperienceSenior.Rank()
}

// Staff represents a member of the ward roster
type Staff struct {
	ID              string
	Name            string
	Role            Role
	MaxWeeklyHours  int // 0 means use the configured default
	ExperienceLevel ExperienceLevel
	Active          bool
	TeamID          string // Empty string if the staff member has no team
}

// Assignment places one staff member on one shift type for one date
type Assignment struct {
	StaffID   string
	ShiftType ShiftType
	Date      string // YYYY-MM-DD
}

// IsWorking returns false for explicit Off records, which every working-time rule ignores
func (a Assignment) IsWorking() bool {
	return a.ShiftType.IsWorking()
}

// Preference is a staff member's signed desire to work (positive) or avoid (negative)
// a shift type on a date
type Preference struct {
	StaffID   string
	Date      string
	ShiftType ShiftType
	Score     int // -5 to 5
}

// Roster indexes staff by ID. Lookups of unknown IDs return ok=false.
type Roster struct {
	members []Staff
	byID    map[string]Staff
}

// NewRoster builds a roster index, preserving input order for deterministic iteration
func NewRoster(staff []Staff) *Roster {
	r := &Roster{
		members: make([]Staff, len(staff)),
		byID:    make(map[string]Staff, len(staff)),
	}
	copy(r.members, staff)
	for _, s := range staff {
		r.byID[s.ID] = s
	}
	return r
}

// Members returns the staff in roster order
func (r *Roster) Members() []Staff {
	return r.members
}

// Get returns the staff member with the given ID
func (r *Roster) Get(id string) (Staff, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// RoleOf returns the staff member's role, or RoleUnknown if not on the roster
func (r *Roster) RoleOf(id string) Role {
	if s, ok := r.byID[id]; ok {
		return s.Role
	}
	return RoleUnknown
}

// ActiveMembers returns active staff in roster order
func (r *Roster) ActiveMembers() []Staff {
	active := make([]Staff, 0, len(r.members))
	for _, s := range r.members {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}
