package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MedicApp/database"
	"MedicApp/models"
)

type BlogRepository struct {
	backend database.Backend
}

func NewBlogRepository(backend database.Backend) *BlogRepository {
	return &BlogRepository{backend: backend}
}

func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now().UTC()
	}
	id, err := r.backend.Insert(ctx, "blogs", map[string]interface{}{
		"doctor_id":  blog.DoctorID,
		"title":      blog.Title,
		"content":    blog.Content,
		"created_at": blog.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	if blog.ID, err = strconv.ParseInt(id, 10, 64); err != nil {
		return models.NewBackendError(fmt.Errorf("unexpected blog id %q: %w", id, err))
	}
	return nil
}

// GetAll lists every post with its author's name, newest first.
func (r *BlogRepository) GetAll(ctx context.Context) ([]models.Blog, error) {
	blogs := []models.Blog{}
	q := database.Query{Table: "blogs"}.
		OrderBy("created_at", false).
		Expand("doctors", "doctor_id", "name")
	if err := selectRows(ctx, r.backend, q, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blogs []models.Blog
	q := database.Query{Table: "blogs"}.
		Eq("id", strconv.FormatInt(id, 10)).
		Expand("doctors", "doctor_id", "name")
	if err := selectRows(ctx, r.backend, q, &blogs); err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, models.NewNotFoundError("Blog not found")
	}
	return &blogs[0], nil
}

func (r *BlogRepository) Update(ctx context.Context, id int64, title, content string) error {
	err := r.backend.Update(ctx, "blogs", strconv.FormatInt(id, 10), map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	if err := r.backend.Delete(ctx, "blogs", strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}
