package service

import (
	"context"
	"testing"
	"time"

	"sns-api/internal/domain"
)

type mockPostRepo struct {
	createFn           func(ctx context.Context, p *domain.Post) error
	findByIDFn         func(ctx context.Context, id string) (*domain.Post, error)
	updateFn           func(ctx context.Context, id, content string, updatedAt time.Time) error
	deleteFn           func(ctx context.Context, id string) error
	paginateFn         func(ctx context.Context, limit, offset int) ([]domain.Post, error)
	paginateByUserIDFn func(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, p *domain.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, id, content string, updatedAt time.Time) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, content, updatedAt)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) Paginate(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if m.paginateFn != nil {
		return m.paginateFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepo) PaginateByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	if m.paginateByUserIDFn != nil {
		return m.paginateByUserIDFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func TestPostCreateStamps(t *testing.T) {
	var stored domain.Post
	repo := &mockPostRepo{
		createFn: func(_ context.Context, p *domain.Post) error {
			stored = *p
			return nil
		},
	}
	d := NewPostDomain(repo)

	before := time.Now()
	got, err := d.Create(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == "" || got.ID != stored.ID {
		t.Fatalf("id not stamped: %q vs %q", got.ID, stored.ID)
	}
	if got.UserID != "u1" || got.Content != "hello" {
		t.Fatalf("fields: %+v", got)
	}
	if got.CreatedAt.Before(before) || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("timestamps: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestPostUpdateRefreshesUpdatedAt(t *testing.T) {
	var gotContent string
	var gotAt time.Time
	repo := &mockPostRepo{
		updateFn: func(_ context.Context, _ string, content string, updatedAt time.Time) error {
			gotContent, gotAt = content, updatedAt
			return nil
		},
	}
	d := NewPostDomain(repo)

	before := time.Now()
	if err := d.Update(context.Background(), "p1", "edited"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotContent != "edited" {
		t.Fatalf("content = %q", gotContent)
	}
	if gotAt.Before(before) {
		t.Fatalf("updatedAt not refreshed: %v", gotAt)
	}
}

func TestPostPaginateDefaults(t *testing.T) {
	cases := []struct {
		name               string
		limit, offset      int
		wantLimit, wantOfs int
	}{
		{"defaults", 0, 0, 10, 0},
		{"negative", -3, -7, 10, 0},
		{"explicit", 25, 50, 25, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit, gotOfs int
			repo := &mockPostRepo{
				paginateFn: func(_ context.Context, limit, offset int) ([]domain.Post, error) {
					gotLimit, gotOfs = limit, offset
					return nil, nil
				},
			}
			d := NewPostDomain(repo)
			if _, err := d.Paginate(context.Background(), tc.limit, tc.offset); err != nil {
				t.Fatalf("paginate: %v", err)
			}
			if gotLimit != tc.wantLimit || gotOfs != tc.wantOfs {
				t.Fatalf("limit=%d offset=%d, want %d/%d", gotLimit, gotOfs, tc.wantLimit, tc.wantOfs)
			}
		})
	}
}

func TestPostPaginateByUserID(t *testing.T) {
	var gotUser string
	var gotLimit int
	repo := &mockPostRepo{
		paginateByUserIDFn: func(_ context.Context, userID string, limit, _ int) ([]domain.Post, error) {
			gotUser, gotLimit = userID, limit
			return []domain.Post{{ID: "p1", UserID: userID}}, nil
		},
	}
	d := NewPostDomain(repo)

	out, err := d.PaginateByUserID(context.Background(), "u9", 0, 0)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if gotUser != "u9" || gotLimit != 10 {
		t.Fatalf("user=%q limit=%d", gotUser, gotLimit)
	}
	if len(out) != 1 || out[0].UserID != "u9" {
		t.Fatalf("out = %+v", out)
	}
}
