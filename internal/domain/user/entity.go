// internal/domain/user/entity.go
package user

import "strings"

// User is the authenticated customer record as issued by the shop API and
// kept in the session store.
type User struct {
	ID        string    `json:"_id" binding:"required"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Name      string    `json:"name,omitempty"`
}

// Address represents a saved shipping address
type Address struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Province   string `json:"province"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
}

// GetFullName returns first and last name joined, trimmed
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// deriveName fills Name from first and last name when it is missing
func (u *User) deriveName() {
	if u.Name == "" && (u.FirstName != "" || u.LastName != "") {
		u.Name = u.GetFullName()
	}
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	Username  *string    `json:"username"`
	Phone     *string    `json:"phone"`
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	Name      *string    `json:"name"`
	Addresses *[]Address `json:"addresses"`
	UpdatedAt *string    `json:"updatedAt"`
}

func (p Patch) apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Addresses != nil {
		u.Addresses = *p.Addresses
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
	return u
}
