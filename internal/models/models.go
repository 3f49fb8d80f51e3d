package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is one alumnus/alumna record. Verification fields stay nil until an
// admin confirms the profile, either one-by-one or through a roster upload.
type Profile struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName        string     `gorm:"size:120" json:"first_name"`
	LastName         string     `gorm:"size:120" json:"last_name"`
	Email            string     `gorm:"size:255;uniqueIndex" json:"email"`
	GraduationYear   *int       `json:"graduation_year"`
	Degree           string     `gorm:"size:180" json:"degree"`
	EmploymentStatus string     `gorm:"size:40" json:"employment_status"`
	Employer         string     `gorm:"size:180" json:"employer"`
	JobTitle         string     `gorm:"size:180" json:"job_title"`
	City             string     `gorm:"size:120" json:"city"`
	Country          string     `gorm:"size:120" json:"country"`
	Verified         *bool      `json:"verified"`
	VerifiedAt       *time.Time `json:"verified_at"`
	VerifiedBy       string     `gorm:"size:255" json:"verified_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsVerified treats an absent flag the same as false.
func (p Profile) IsVerified() bool {
	return p.Verified != nil && *p.Verified
}

// FullName joins first and last name with a single space; either part may be
// empty on incomplete records.
func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// AdminUser is a back-office account. Role is either RoleAdmin or RoleViewer;
// viewers get read-only access.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:20" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Author    string    `gorm:"size:255" json:"author"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuditLog records administrative actions. Writes are fire-and-forget.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:80" json:"action"`
	Detail    string    `gorm:"type:text" json:"detail"`
	Actor     string    `gorm:"size:255" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// ParsedDocument holds the normalized fields extracted from a scanned
// graduation document for subsequent verification against a profile.
type ParsedDocument struct {
	FullName        string `json:"full_name"`
	YearOfPassing   string `json:"year_of_passing"`
	Degree          string `json:"degree"`
	InstitutionName string `json:"institution_name"`
}
