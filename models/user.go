package models

import "time"

// UserType is the role of an authenticated caller.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeVendor   UserType = "vendor"
	UserTypeAdmin    UserType = "admin"
)

// NormalizeUserType maps legacy role names onto the three supported roles.
func NormalizeUserType(raw string) UserType {
	switch raw {
	case "customer", "candidate":
		return UserTypeCustomer
	case "vendor", "employer":
		return UserTypeVendor
	case "admin":
		return UserTypeAdmin
	}
	return ""
}

// User is the local profile of an identity managed by the external provider.
type User struct {
	ID        string    `bson:"id" json:"id"`
	UID       string    `bson:"uid" json:"uid"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	MobileNo  string    `bson:"mobileNo" json:"mobileNo"`
	UserType  UserType  `bson:"userType" json:"userType"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Caller is the resolved identity attached to every request.
type Caller struct {
	UID      string   `json:"uid"`
	UserType UserType `json:"userType"`
	Name     string   `json:"name,omitempty"`
}

func (c Caller) IsAdmin() bool    { return c.UserType == UserTypeAdmin }
func (c Caller) IsVendor() bool   { return c.UserType == UserTypeVendor }
func (c Caller) IsCustomer() bool { return c.UserType == UserTypeCustomer }
