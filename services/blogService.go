package services

import (
	"context"

	"MedicApp/models"
	"MedicApp/repositories"
	"MedicApp/utils"
)

// BlogInput is the title and body of a post.
type BlogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BlogService manages posts. Authorship is not checked here; see CanModify.
type BlogService struct {
	repository *repositories.BlogRepository
}

func NewBlogService(repository *repositories.BlogRepository) *BlogService {
	return &BlogService{repository: repository}
}

// ListBlogs returns every post with its author's name, newest first.
func (s *BlogService) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.repository.GetAll(ctx)
}

func (s *BlogService) GetBlog(ctx context.Context, blogID int64) (*models.Blog, error) {
	return s.repository.GetByID(ctx, blogID)
}

func (s *BlogService) CreateBlog(ctx context.Context, doctorID string, in BlogInput) (*models.Blog, error) {
	if err := utils.ValidateBlog(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error(), err)
	}
	blog := &models.Blog{DoctorID: doctorID, Title: in.Title, Content: in.Content}
	if err := s.repository.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, blogID int64, in BlogInput) error {
	if err := utils.ValidateBlog(in.Title); err != nil {
		return models.NewValidationError(err.Error(), err)
	}
	return s.repository.Update(ctx, blogID, in.Title, in.Content)
}

func (s *BlogService) DeleteBlog(ctx context.Context, blogID int64) error {
	return s.repository.Delete(ctx, blogID)
}

// CanModify reports whether the session user wrote the post.
func CanModify(sessionUserID string, blog models.Blog) bool {
	return sessionUserID != "" && sessionUserID == blog.DoctorID
}
