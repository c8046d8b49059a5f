package service

import (
	"context"
	"fmt"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
	"chronicle/internal/validation"
	"chronicle/internal/views"

	"github.com/google/uuid"
)

// PostService provides post, rating and comment business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifSvc *NotificationService
}

// CreatePostInput is the payload for creating a post. Author identity
// comes from the authenticated principal, never the request body.
type CreatePostInput struct {
	AuthorEmail string
	Title       string
	Content     string
	Category    string
	Image       string
}

// UpdatePostInput is the payload for editing a post. Empty fields keep
// their current value.
type UpdatePostInput struct {
	Editor   *models.User
	PostID   string
	Title    string
	Content  string
	Category string
	Image    string
}

// ListPostsInput selects, orders and pages the post collection for one
// viewer. Viewer may be nil for anonymous readers.
type ListPostsInput struct {
	Viewer   *models.User
	Search   string
	Category string
	SortBy   string
	Page     int
	PageSize int
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifSvc *NotificationService,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifSvc: notifSvc,
	}
}

// ListPosts returns one page of posts visible to the viewer, filtered and
// sorted per the input.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*views.Page[models.Post], error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := views.VisibleTo(posts, in.Viewer)
	filtered := views.FilterPosts(visible, views.PostQuery{
		Search:   in.Search,
		Category: in.Category,
		SortBy:   in.SortBy,
	})
	page := views.Paginate(filtered, in.PageSize, in.Page)
	return &page, nil
}

// ListByAuthor returns one page of the author's posts, newest first,
// restricted to what the viewer may see. Unknown authors return NotFound
// rather than an empty listing.
func (s *PostService) ListByAuthor(ctx context.Context, authorEmail string, viewer *models.User, page, pageSize int) (*views.Page[models.Post], error) {
	authorEmail = models.NormalizeEmail(authorEmail)
	author, err := s.userRepo.GetByEmail(ctx, authorEmail)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", authorEmail)
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := views.VisibleTo(posts, viewer)
	mine := views.ByAuthor(visible, authorEmail)
	result := views.Paginate(mine, pageSize, page)
	return &result, nil
}

// GetPost returns a single post if the viewer may see it.
func (s *PostService) GetPost(ctx context.Context, id string, viewer *models.User) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// Feed returns the posts authored by users the viewer follows, newest
// first, paged.
func (s *PostService) Feed(ctx context.Context, viewer *models.User, followed []string, page, pageSize int) (*views.Page[models.Post], error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := views.VisibleTo(posts, viewer)
	feed := views.Feed(visible, followed)
	result := views.Paginate(feed, pageSize, page)
	return &result, nil
}

// CreatePost validates the draft and stores it with the author resolved
// from the user record.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostInput(in.Title, in.Content, in.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown category %q", in.Category))
	}

	author, err := s.userRepo.GetByEmail(ctx, in.AuthorEmail)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", in.AuthorEmail)
	}

	post := &models.Post{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Author:      author.FullName,
		AuthorEmail: author.Email,
		Category:    in.Category,
		Date:        time.Now().UTC(),
		Image:       in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post. Only the author may edit; admins moderate via
// disable and delete instead of rewriting other people's words.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Editor == nil {
		return nil, models.NewForbiddenError("Authentication required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorEmail != in.Editor.Email {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	title := post.Title
	if in.Title != "" {
		title = in.Title
	}
	content := post.Content
	if in.Content != "" {
		content = in.Content
	}
	category := post.Category
	if in.Category != "" {
		category = in.Category
	}
	if err := validation.ValidatePostInput(title, content, category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown category %q", category))
	}

	return s.postRepo.Update(ctx, in.PostID, func(p *models.Post) error {
		p.Title = title
		p.Content = content
		p.Category = category
		if in.Image != "" {
			p.Image = in.Image
		}
		return nil
	})
}

// DeletePost removes a post. Only the author may delete; admins moderate
// through disable, not removal.
func (s *PostService) DeletePost(ctx context.Context, id string, actor *models.User) error {
	if actor == nil {
		return models.NewForbiddenError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorEmail != actor.Email {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, id)
}

// SetDisabled toggles a post's moderation flag. Admin only.
func (s *PostService) SetDisabled(ctx context.Context, id string, disabled bool, actor *models.User) (*models.Post, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, models.NewForbiddenError("Admin access required")
	}
	return s.postRepo.SetDisabled(ctx, id, disabled)
}

// RatePost appends a rating to a post the rater can see.
func (s *PostService) RatePost(ctx context.Context, id string, value int, rater *models.User) (*models.Post, error) {
	if rater == nil {
		return nil, models.NewForbiddenError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(rater) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.postRepo.AddRating(ctx, id, value)
}

// AddComment appends a comment and notifies the post author unless they
// are commenting on their own post.
func (s *PostService) AddComment(ctx context.Context, postID, text string, commenter *models.User) (*models.Post, error) {
	if commenter == nil {
		return nil, models.NewForbiddenError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(commenter) {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := models.Comment{
		ID:          uuid.NewString(),
		Author:      commenter.FullName,
		AuthorEmail: commenter.Email,
		Text:        text,
		Date:        time.Now().UTC(),
	}
	updated, err := s.postRepo.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	if s.notifSvc != nil && post.AuthorEmail != commenter.Email {
		err := s.notifSvc.Emit(ctx, post.AuthorEmail, models.Notification{
			Type:      models.NotificationComment,
			From:      commenter.FullName,
			FromEmail: commenter.Email,
			Message:   fmt.Sprintf("%s commented on your post", commenter.FullName),
			PostID:    post.ID,
			PostTitle: post.Title,
		})
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// UpdateComment edits a comment. Only the comment author may edit; the
// edit is flagged so readers can tell.
func (s *PostService) UpdateComment(ctx context.Context, postID, commentID, text string, actor *models.User) (*models.Post, error) {
	if actor == nil {
		return nil, models.NewForbiddenError("Authentication required")
	}
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	return s.postRepo.Update(ctx, postID, func(p *models.Post) error {
		idx := p.FindComment(commentID)
		if idx < 0 {
			return models.NewNotFoundError("Comment", commentID)
		}
		if p.Comments[idx].AuthorEmail != actor.Email {
			return models.NewForbiddenError("You can only edit your own comments")
		}
		p.Comments[idx].Text = text
		p.Comments[idx].Edited = true
		return nil
	})
}

// DeleteComment removes a comment. The comment author or the post author
// may delete.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string, actor *models.User) (*models.Post, error) {
	if actor == nil {
		return nil, models.NewForbiddenError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := post.FindComment(commentID)
	if idx < 0 {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	c := post.Comments[idx]
	if c.AuthorEmail != actor.Email && post.AuthorEmail != actor.Email {
		return nil, models.NewForbiddenError("You cannot delete this comment")
	}
	return s.postRepo.RemoveComment(ctx, postID, commentID)
}
