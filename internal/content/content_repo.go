package content

import (
	"context"
	"errors"
	"fmt"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetKind says which table a comment or reaction points at.
type TargetKind int

const (
	TargetTutorial TargetKind = iota + 1
	TargetBlog
)

// Target identifies one tutorial or blog.
type Target struct {
	Kind TargetKind
	ID   uint64
}

func BlogTarget(id uint64) Target     { return Target{Kind: TargetBlog, ID: id} }
func TutorialTarget(id uint64) Target { return Target{Kind: TargetTutorial, ID: id} }

func (t Target) column() string {
	if t.Kind == TargetBlog {
		return "blog_id"
	}
	return "tutorial_id"
}

func (t Target) String() string {
	if t.Kind == TargetBlog {
		return "blog"
	}
	return "tutorial"
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// --------- BLOGS ---------
type Blogs interface {
	CreateBlog(ctx context.Context, blog *dbmysql.Blog) error
	GetBlogByID(ctx context.Context, id uint64) (*dbmysql.Blog, error)
	ListBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error)
	TrendingBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error)
}

func (r *ContentRepository) CreateBlog(ctx context.Context, blog *dbmysql.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (r *ContentRepository) GetBlogByID(ctx context.Context, id uint64) (*dbmysql.Blog, error) {
	var blog dbmysql.Blog
	err := r.db.WithContext(ctx).Preload("Author").First(&blog, "id = ?", id).Error
	if err != nil {
		return nil, lookupError(err, "blog")
	}
	return &blog, nil
}

func (r *ContentRepository) ListBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error) {
	var blogs []*dbmysql.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// TrendingBlogs ranks blogs by likes plus comments.
func (r *ContentRepository) TrendingBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error) {
	likes := r.db.Model(&dbmysql.LikeDislike{}).
		Select("COUNT(*)").
		Where("like_dislikes.blog_id = blogs.id AND like_dislikes.is_like = ?", true)
	comments := r.db.Model(&dbmysql.Comment{}).
		Select("COUNT(*)").
		Where("comments.blog_id = blogs.id")

	var blogs []*dbmysql.Blog
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Blog{}).
		Select("blogs.*, (?) + (?) AS popularity", likes, comments).
		Preload("Author").
		Order("popularity DESC").
		Order("blogs.created_at DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank blogs: %w", err)
	}
	return blogs, nil
}

// --------- TUTORIALS ---------
type Tutorials interface {
	ListCategories(ctx context.Context) ([]*dbmysql.Category, error)
	CategoryExists(ctx context.Context, id uint64) (bool, error)
	CreateTutorial(ctx context.Context, tutorial *dbmysql.Tutorial) error
	GetTutorialByID(ctx context.Context, id uint64) (*dbmysql.Tutorial, error)
	// ListTutorials filters by category unless categoryID is 0.
	ListTutorials(ctx context.Context, categoryID uint64) ([]*dbmysql.Tutorial, error)
}

func (r *ContentRepository) ListCategories(ctx context.Context) ([]*dbmysql.Category, error) {
	var categories []*dbmysql.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *ContentRepository) CategoryExists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up category: %w", err)
	}
	return count > 0, nil
}

func (r *ContentRepository) CreateTutorial(ctx context.Context, tutorial *dbmysql.Tutorial) error {
	if err := r.db.WithContext(ctx).Create(tutorial).Error; err != nil {
		return fmt.Errorf("failed to create tutorial: %w", err)
	}
	return nil
}

func (r *ContentRepository) GetTutorialByID(ctx context.Context, id uint64) (*dbmysql.Tutorial, error) {
	var tutorial dbmysql.Tutorial
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&tutorial, "id = ?", id).Error
	if err != nil {
		return nil, lookupError(err, "tutorial")
	}
	return &tutorial, nil
}

func (r *ContentRepository) ListTutorials(ctx context.Context, categoryID uint64) ([]*dbmysql.Tutorial, error) {
	query := r.db.WithContext(ctx).Preload("Author").Preload("Category")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var tutorials []*dbmysql.Tutorial
	if err := query.Order("created_at DESC").Order("id DESC").Find(&tutorials).Error; err != nil {
		return nil, fmt.Errorf("failed to list tutorials: %w", err)
	}
	return tutorials, nil
}

// --------- COMMENTS ---------
type Comments interface {
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	ListComments(ctx context.Context, target Target) ([]*dbmysql.Comment, error)
}

func (r *ContentRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *ContentRepository) ListComments(ctx context.Context, target Target) ([]*dbmysql.Comment, error) {
	var comments []*dbmysql.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where(target.column()+" = ?", target.ID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// --------- REACTIONS ---------
type Reactions interface {
	// UpsertReaction keeps a single vote per user and target.
	UpsertReaction(ctx context.Context, reaction *dbmysql.LikeDislike) error
	CountReactions(ctx context.Context, target Target) (likes, dislikes int64, err error)
}

func (r *ContentRepository) UpsertReaction(ctx context.Context, reaction *dbmysql.LikeDislike) error {
	target := "tutorial_id"
	if reaction.BlogID != nil {
		target = "blog_id"
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: target}},
			DoUpdates: clause.AssignmentColumns([]string{"is_like"}),
		}).
		Create(reaction).Error
	if err != nil {
		return fmt.Errorf("failed to save reaction: %w", err)
	}
	return nil
}

func (r *ContentRepository) CountReactions(ctx context.Context, target Target) (int64, int64, error) {
	var rows []struct {
		IsLike bool
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&dbmysql.LikeDislike{}).
		Select("is_like, COUNT(*) AS total").
		Where(target.column()+" = ?", target.ID).
		Group("is_like").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count reactions: %w", err)
	}

	var likes, dislikes int64
	for _, row := range rows {
		if row.IsLike {
			likes = row.Total
		} else {
			dislikes = row.Total
		}
	}
	return likes, dislikes, nil
}

func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
