package dbmysql

import (
	"time"
)

type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type Tutorial struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"column:title;size:255;not null" json:"title"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID   uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	CategoryID uint64    `gorm:"column:category_id;index;not null" json:"category_id"`
	Video      *string   `gorm:"column:video;size:255" json:"video,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Author   *User     `gorm:"foreignKey:AuthorID;references:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

// Blog carries at most one media attachment: Image or Video.
type Blog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID  uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	Image     *string   `gorm:"column:image;size:255" json:"image,omitempty"`
	Video     *string   `gorm:"column:video;size:255" json:"video,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID;references:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// Comment targets exactly one of TutorialID or BlogID.
type Comment struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	TutorialID *uint64   `gorm:"column:tutorial_id;index" json:"tutorial_id,omitempty"`
	BlogID     *uint64   `gorm:"column:blog_id;index" json:"blog_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// LikeDislike is one vote per user per tutorial or blog.
type LikeDislike struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64  `gorm:"column:user_id;not null;index:idx_like_user_tutorial,unique;index:idx_like_user_blog,unique" json:"user_id"`
	TutorialID *uint64 `gorm:"column:tutorial_id;index:idx_like_user_tutorial,unique" json:"tutorial_id,omitempty"`
	BlogID     *uint64 `gorm:"column:blog_id;index:idx_like_user_blog,unique" json:"blog_id,omitempty"`
	IsLike     bool    `gorm:"column:is_like;not null" json:"is_like"`
}
