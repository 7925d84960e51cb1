package domain

import (
	"slices"
	"strings"
	"time"
)

// Social holds the named external links shown on a profile.
type Social struct {
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// ExperienceEntry is one job in a profile's experience list.
type ExperienceEntry struct {
	ID          string     `json:"_id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

func (e ExperienceEntry) EntryID() string { return e.ID }

func (e ExperienceEntry) WithID(id string) ExperienceEntry {
	e.ID = id
	return e
}

// Normalize drops the end date of a current position.
func (e ExperienceEntry) Normalize() ExperienceEntry {
	if e.Current {
		e.To = nil
	}
	return e
}

// EducationEntry is one school in a profile's education list.
type EducationEntry struct {
	ID           string     `json:"_id" bson:"_id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy,omitempty" bson:"fieldofstudy,omitempty"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

func (e EducationEntry) EntryID() string { return e.ID }

func (e EducationEntry) WithID(id string) EducationEntry {
	e.ID = id
	return e
}

// Normalize drops the end date of an ongoing course of study.
func (e EducationEntry) Normalize() EducationEntry {
	if e.Current {
		e.To = nil
	}
	return e
}

// Profile is the professional record owned by exactly one Identity.
// OwnerID is fixed at creation.
type Profile struct {
	ID             string            `json:"_id" bson:"_id,omitempty"`
	OwnerID        string            `json:"user" bson:"user"`
	Company        string            `json:"company,omitempty" bson:"company,omitempty"`
	Website        string            `json:"website,omitempty" bson:"website,omitempty"`
	Location       string            `json:"location,omitempty" bson:"location,omitempty"`
	Status         string            `json:"status,omitempty" bson:"status,omitempty"`
	Skills         []string          `json:"skills" bson:"skills"`
	Bio            string            `json:"bio,omitempty" bson:"bio,omitempty"`
	GitHubUsername string            `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Social         Social            `json:"social" bson:"social"`
	Experience     []ExperienceEntry `json:"experience" bson:"experience"`
	Education      []EducationEntry  `json:"education" bson:"education"`
	Date           time.Time         `json:"date" bson:"date"`
}

// Owner implements Owned.
func (p *Profile) Owner() string {
	if p == nil {
		return ""
	}
	return p.OwnerID
}

// AddExperience prepends e with a fresh id and returns the stored entry.
func (p *Profile) AddExperience(e ExperienceEntry, next IDSource) ExperienceEntry {
	var stamped ExperienceEntry
	p.Experience, stamped = InsertFront(p.Experience, e.Normalize(), next)
	return stamped
}

// RemoveExperience deletes the experience entry with the given id.
func (p *Profile) RemoveExperience(id string) bool {
	var removed bool
	p.Experience, removed = RemoveByID(p.Experience, id)
	return removed
}

// AddEducation prepends e with a fresh id and returns the stored entry.
func (p *Profile) AddEducation(e EducationEntry, next IDSource) EducationEntry {
	var stamped EducationEntry
	p.Education, stamped = InsertFront(p.Education, e.Normalize(), next)
	return stamped
}

// RemoveEducation deletes the education entry with the given id.
func (p *Profile) RemoveEducation(id string) bool {
	var removed bool
	p.Education, removed = RemoveByID(p.Education, id)
	return removed
}

// Clone returns a deep copy so callers never alias the stored sequences.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Skills = slices.Clone(p.Skills)
	c.Experience = slices.Clone(p.Experience)
	c.Education = slices.Clone(p.Education)
	return &c
}

// ProfileFields carries the scalar part of a create-or-update request.
// Empty strings leave the stored value as it is; a nil Skills slice does too.
type ProfileFields struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GitHubUsername string
	Skills         []string
	Social         Social
}

// Apply copies every non-empty field onto p. OwnerID is never touched.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Status, f.Status)
	set(&p.Bio, f.Bio)
	set(&p.GitHubUsername, f.GitHubUsername)
	set(&p.Social.YouTube, f.Social.YouTube)
	set(&p.Social.Twitter, f.Social.Twitter)
	set(&p.Social.Facebook, f.Social.Facebook)
	set(&p.Social.LinkedIn, f.Social.LinkedIn)
	set(&p.Social.Instagram, f.Social.Instagram)
	if f.Skills != nil {
		p.Skills = append([]string(nil), f.Skills...)
	}
}

// ParseSkills splits a comma-separated skill list, trimming blanks.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
