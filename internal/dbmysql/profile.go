package dbmysql

import (
	"time"
)

// Profile holds the public career details of a user.
type Profile struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64 `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Bio            string `gorm:"column:bio;type:text" json:"bio"`
	ProfilePicture string `gorm:"column:profile_picture;size:255" json:"profile_picture,omitempty"`
	CareerJourney  string `gorm:"column:career_journey;type:text" json:"career_journey"`
	Location       string `gorm:"column:location;size:255" json:"location"`
	ContactNumber  string `gorm:"column:contact_number;size:15" json:"contact_number"`
	Twitter        string `gorm:"column:twitter;size:200" json:"twitter,omitempty"`
	LinkedIn       string `gorm:"column:linkedin;size:200" json:"linkedin,omitempty"`
	Facebook       string `gorm:"column:facebook;size:200" json:"facebook,omitempty"`
	Instagram      string `gorm:"column:instagram;size:200" json:"instagram,omitempty"`

	User           *User            `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Certificates   []Certificate    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"certificates"`
	Skills         []Skill          `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"skills"`
	Achievements   []Achievement    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"achievements"`
	WorkExperience []WorkExperience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"work_experience"`
}

type Certificate struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID   uint64    `gorm:"column:profile_id;index;not null" json:"-"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Institution string    `gorm:"column:institution;size:255;not null" json:"institution"`
	DateIssued  time.Time `gorm:"column:date_issued" json:"date_issued"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
}

type Skill struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"column:profile_id;index;not null" json:"-"`
	Name      string `gorm:"column:name;size:100;not null" json:"name"`
}

type Achievement struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID    uint64    `gorm:"column:profile_id;index;not null" json:"-"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	DateAchieved time.Time `gorm:"column:date_achieved" json:"date_achieved"`
	Description  string    `gorm:"column:description;type:text" json:"description,omitempty"`
}

// WorkExperience with a nil EndDate is the current position.
type WorkExperience struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID        uint64     `gorm:"column:profile_id;index;not null" json:"-"`
	JobTitle         string     `gorm:"column:job_title;size:255;not null" json:"job_title"`
	CompanyName      string     `gorm:"column:company_name;size:255;not null" json:"company_name"`
	StartDate        time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate          *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Responsibilities string     `gorm:"column:responsibilities;type:text" json:"responsibilities,omitempty"`
}
