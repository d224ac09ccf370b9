package models

// ProfileType distinguishes the role record attached to a profile.
// Resolved at signup time; a profile has exactly one type.
type ProfileType string

const (
	ProfileTypeStudent ProfileType = "student"
	ProfileTypeMentor  ProfileType = "mentor"
)

// IsValid checks whether the profile type is one of the known values
func (t ProfileType) IsValid() bool {
	return t == ProfileTypeStudent || t == ProfileTypeMentor
}

// MemberRole is the role a profile holds inside a project
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// RequestType discriminates pending project requests
type RequestType string

const (
	RequestTypeInvitation   RequestType = "invitation"
	RequestTypeEntryRequest RequestType = "entry_request"
)

// CategoryChoice pairs the stored category value with its display text
type CategoryChoice struct {
	Value    string `json:"value" example:"startup"`
	Readable string `json:"readable" example:"startup"`
}

// ProjectCategories lists the valid project categories with their readable
// (Portuguese) labels, in declaration order
var ProjectCategories = []CategoryChoice{
	{Value: "startup", Readable: "startup"},
	{Value: "junior_enterprise", Readable: "empresa júnior"},
	{Value: "academic", Readable: "projeto acadêmico"},
	{Value: "social_project", Readable: "projeto social"},
}

// DiscussionCategories lists the valid discussion categories
var DiscussionCategories = []CategoryChoice{
	{Value: "doubt", Readable: "dúvida"},
	{Value: "suggestion", Readable: "sugestão"},
	{Value: "feedback", Readable: "feedback"},
}

// IsValidProjectCategory reports whether value is a known project category
func IsValidProjectCategory(value string) bool {
	for _, c := range ProjectCategories {
		if c.Value == value {
			return true
		}
	}
	return false
}

// IsValidDiscussionCategory reports whether value is a known discussion category
func IsValidDiscussionCategory(value string) bool {
	for _, c := range DiscussionCategories {
		if c.Value == value {
			return true
		}
	}
	return false
}

// ReadableProjectCategory returns the display label for a category value.
// Unknown values are returned as-is.
func ReadableProjectCategory(value string) string {
	for _, c := range ProjectCategories {
		if c.Value == value {
			return c.Readable
		}
	}
	return value
}

// ReadableDiscussionCategory returns the display label for a discussion category value
func ReadableDiscussionCategory(value string) string {
	for _, c := range DiscussionCategories {
		if c.Value == value {
			return c.Readable
		}
	}
	return value
}
