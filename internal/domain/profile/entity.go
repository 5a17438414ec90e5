// internal/domain/profile/entity.go
package profile

import "strings"

// Default guest identity used until the user edits their profile
const (
	DefaultName  = "Guest User"
	DefaultEmail = "guest@smartshop.ai"
	DefaultPhone = "+1 (555) 123-4567"
)

// UserProfile is the editable user identity. Avatar holds a JPEG data
// URL produced by the upload pipeline.
type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// DefaultProfile returns the guest identity
func DefaultProfile() *UserProfile {
	return &UserProfile{
		Name:  DefaultName,
		Email: DefaultEmail,
		Phone: DefaultPhone,
	}
}

// valid reports whether a loaded profile is usable; a profile without
// a name or email is treated as corrupted and replaced by the default
func (p *UserProfile) valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Email) != ""
}
