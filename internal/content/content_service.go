package content

import (
	"context"
	"fmt"
	"strings"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BlogInput is the payload of a new blog post. At most one of Image and
// Video may be set.
type BlogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Video   string `json:"video,omitempty"`
}

type TutorialInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID uint64 `json:"category_id"`
	Video      string `json:"video,omitempty"`
}

type ReactionSummary struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type BlogDetail struct {
	Blog      *dbmysql.Blog      `json:"blog"`
	Comments  []*dbmysql.Comment `json:"comments"`
	Reactions ReactionSummary    `json:"reactions"`
}

type TutorialDetail struct {
	Tutorial  *dbmysql.Tutorial  `json:"tutorial"`
	Comments  []*dbmysql.Comment `json:"comments"`
	Reactions ReactionSummary    `json:"reactions"`
}

// ContentUsecase is what the HTTP layer needs from the blog and tutorial catalogue.
type ContentUsecase interface {
	ListBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error)
	TrendingBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error)
	GetBlog(ctx context.Context, id uint64) (*BlogDetail, error)
	CreateBlog(ctx context.Context, authorID uint64, in BlogInput) (*dbmysql.Blog, error)
	AddBlogComment(ctx context.Context, userID, blogID uint64, body string) (*dbmysql.Comment, error)

	ListCategories(ctx context.Context) ([]*dbmysql.Category, error)
	ListTutorials(ctx context.Context, categoryID uint64) ([]*dbmysql.Tutorial, error)
	GetTutorial(ctx context.Context, id uint64) (*TutorialDetail, error)
	CreateTutorial(ctx context.Context, authorID uint64, in TutorialInput) (*dbmysql.Tutorial, error)
	AddTutorialComment(ctx context.Context, userID, tutorialID uint64, body string) (*dbmysql.Comment, error)

	React(ctx context.Context, userID uint64, target Target, kind common.ReactionKind) (*ReactionSummary, error)
	ReactionCounts(ctx context.Context, target Target) (*ReactionSummary, error)
}

type ContentService struct {
	blogs     Blogs
	tutorials Tutorials
	comments  Comments
	reactions Reactions
}

func NewContentService(b Blogs, t Tutorials, c Comments, r Reactions) *ContentService {
	return &ContentService{blogs: b, tutorials: t, comments: c, reactions: r}
}

// --------- BLOGS ---------

func (s *ContentService) ListBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error) {
	return s.blogs.ListBlogs(ctx, pageSize(limit))
}

func (s *ContentService) TrendingBlogs(ctx context.Context, limit int) ([]*dbmysql.Blog, error) {
	return s.blogs.TrendingBlogs(ctx, pageSize(limit))
}

func (s *ContentService) GetBlog(ctx context.Context, id uint64) (*BlogDetail, error) {
	blog, err := s.blogs.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := BlogTarget(id)
	comments, err := s.comments.ListComments(ctx, target)
	if err != nil {
		return nil, err
	}
	summary, err := s.ReactionCounts(ctx, target)
	if err != nil {
		return nil, err
	}
	return &BlogDetail{Blog: blog, Comments: comments, Reactions: *summary}, nil
}

func (s *ContentService) CreateBlog(ctx context.Context, authorID uint64, in BlogInput) (*dbmysql.Blog, error) {
	title, err := common.RequireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	body, err := common.RequireText("content", in.Content)
	if err != nil {
		return nil, err
	}

	image := optional(in.Image)
	video := optional(in.Video)
	if image != nil && video != nil {
		return nil, fmt.Errorf("%w: a blog can have an image or a video, not both", common.ErrValidation)
	}

	blog := &dbmysql.Blog{
		Title:    title,
		Content:  body,
		AuthorID: authorID,
		Image:    image,
		Video:    video,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *ContentService) AddBlogComment(ctx context.Context, userID, blogID uint64, body string) (*dbmysql.Comment, error) {
	if _, err := s.blogs.GetBlogByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.addComment(ctx, userID, BlogTarget(blogID), body)
}

// --------- TUTORIALS ---------

func (s *ContentService) ListCategories(ctx context.Context) ([]*dbmysql.Category, error) {
	return s.tutorials.ListCategories(ctx)
}

func (s *ContentService) ListTutorials(ctx context.Context, categoryID uint64) ([]*dbmysql.Tutorial, error) {
	return s.tutorials.ListTutorials(ctx, categoryID)
}

func (s *ContentService) GetTutorial(ctx context.Context, id uint64) (*TutorialDetail, error) {
	tutorial, err := s.tutorials.GetTutorialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := TutorialTarget(id)
	comments, err := s.comments.ListComments(ctx, target)
	if err != nil {
		return nil, err
	}
	summary, err := s.ReactionCounts(ctx, target)
	if err != nil {
		return nil, err
	}
	return &TutorialDetail{Tutorial: tutorial, Comments: comments, Reactions: *summary}, nil
}

func (s *ContentService) CreateTutorial(ctx context.Context, authorID uint64, in TutorialInput) (*dbmysql.Tutorial, error) {
	title, err := common.RequireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	body, err := common.RequireText("content", in.Content)
	if err != nil {
		return nil, err
	}

	ok, err := s.tutorials.CategoryExists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: category %d", common.ErrNotFound, in.CategoryID)
	}

	tutorial := &dbmysql.Tutorial{
		Title:      title,
		Content:    body,
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
		Video:      optional(in.Video),
	}
	if err := s.tutorials.CreateTutorial(ctx, tutorial); err != nil {
		return nil, err
	}
	return tutorial, nil
}

func (s *ContentService) AddTutorialComment(ctx context.Context, userID, tutorialID uint64, body string) (*dbmysql.Comment, error) {
	if _, err := s.tutorials.GetTutorialByID(ctx, tutorialID); err != nil {
		return nil, err
	}
	return s.addComment(ctx, userID, TutorialTarget(tutorialID), body)
}

// --------- COMMENTS ---------

func (s *ContentService) addComment(ctx context.Context, userID uint64, target Target, body string) (*dbmysql.Comment, error) {
	body, err := common.RequireText("comment", body)
	if err != nil {
		return nil, err
	}

	comment := &dbmysql.Comment{UserID: userID, Content: body}
	id := target.ID
	if target.Kind == TargetBlog {
		comment.BlogID = &id
	} else {
		comment.TutorialID = &id
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// --------- REACTIONS ---------

// React records or replaces the user's vote and returns the new totals.
func (s *ContentService) React(ctx context.Context, userID uint64, target Target, kind common.ReactionKind) (*ReactionSummary, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown reaction %q", common.ErrValidation, kind)
	}
	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}

	reaction := &dbmysql.LikeDislike{UserID: userID, IsLike: kind.IsLike()}
	id := target.ID
	if target.Kind == TargetBlog {
		reaction.BlogID = &id
	} else {
		reaction.TutorialID = &id
	}

	if err := s.reactions.UpsertReaction(ctx, reaction); err != nil {
		return nil, err
	}
	return s.ReactionCounts(ctx, target)
}

func (s *ContentService) ReactionCounts(ctx context.Context, target Target) (*ReactionSummary, error) {
	likes, dislikes, err := s.reactions.CountReactions(ctx, target)
	if err != nil {
		return nil, err
	}
	return &ReactionSummary{Likes: likes, Dislikes: dislikes}, nil
}

func (s *ContentService) ensureTarget(ctx context.Context, target Target) error {
	var err error
	switch target.Kind {
	case TargetBlog:
		_, err = s.blogs.GetBlogByID(ctx, target.ID)
	case TargetTutorial:
		_, err = s.tutorials.GetTutorialByID(ctx, target.ID)
	default:
		err = fmt.Errorf("%w: unknown target", common.ErrValidation)
	}
	return err
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
