package types

import "encoding/json"

// User is the canonical user profile.
type User struct {
	ID        int        `json:"id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Location  string     `json:"location,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Stats     *UserStats `json:"stats,omitempty"`
}

// UserStats holds the per-user counters the profile endpoint reports.
type UserStats struct {
	ResumeCount   int `json:"resume_count"`
	BookmarkCount int `json:"bookmark_count"`
}

// UserProfile aggregates a user with their resumes and recent bookmarks.
type UserProfile struct {
	User            User          `json:"user"`
	Stats           UserStats     `json:"stats"`
	Resumes         []Resume      `json:"resumes"`
	RecentBookmarks []Bookmark    `json:"recent_bookmarks"`
	Applications    []Application `json:"applications"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// UnmarshalJSON accepts both the snake_case and camelCase spellings the
// backend has used. snake_case wins when both are present.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             flexInt    `json:"id"`
		Username       string     `json:"username"`
		Email          string     `json:"email"`
		FirstName      *string    `json:"first_name"`
		FirstNameCamel *string    `json:"firstName"`
		LastName       *string    `json:"last_name"`
		LastNameCamel  *string    `json:"lastName"`
		Phone          string     `json:"phone"`
		Location       string     `json:"location"`
		Bio            string     `json:"bio"`
		Stats          *UserStats `json:"stats"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{
		ID:        int(raw.ID),
		Username:  raw.Username,
		Email:     raw.Email,
		FirstName: first(raw.FirstName, raw.FirstNameCamel),
		LastName:  first(raw.LastName, raw.LastNameCamel),
		Phone:     raw.Phone,
		Location:  raw.Location,
		Bio:       raw.Bio,
		Stats:     raw.Stats,
	}
	return nil
}

// UnmarshalJSON accepts resume_count/resumeCount and bookmark_count/bookmarkCount.
func (s *UserStats) UnmarshalJSON(data []byte) error {
	var raw struct {
		ResumeCount        *flexInt `json:"resume_count"`
		ResumeCountCamel   *flexInt `json:"resumeCount"`
		BookmarkCount      *flexInt `json:"bookmark_count"`
		BookmarkCountCamel *flexInt `json:"bookmarkCount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ResumeCount = int(first(raw.ResumeCount, raw.ResumeCountCamel))
	s.BookmarkCount = int(first(raw.BookmarkCount, raw.BookmarkCountCamel))
	return nil
}

// ProfileUpdate is a partial profile update. Nil fields are not sent.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p *ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Location == nil && p.Bio == nil
}

// Validate validates the ProfileUpdate.
func (p *ProfileUpdate) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Field: "profile", Tag: "required"}
	}
	return validateStruct(p)
}
