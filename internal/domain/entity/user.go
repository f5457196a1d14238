package entity

import "time"

// Role is the account role axis. Role and Status are independent:
// a blocked admin is still an admin.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// Elevated reports whether the role carries admin/volunteer listing and
// lifecycle rights.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleVolunteer
}

// UserStatus is the account status axis.
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserBlocked
}

// BloodGroups is the set of accepted ABO/Rh values.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func ValidBloodGroup(bg string) bool {
	for _, v := range BloodGroups {
		if v == bg {
			return true
		}
	}
	return false
}

// User is an account record, uniquely identified by email.
type User struct {
	ID         string
	Email      string
	Name       string
	AvatarURL  string
	BloodGroup string
	District   string
	Upazila    string
	Role       Role
	Status     UserStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
