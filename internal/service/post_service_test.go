package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"Postbook/internal/model"
	"Postbook/internal/pkg"
)

type postFixture struct {
	posts  *fakePostStore
	users  *fakeUserStore
	votes  *fakeVoteStore
	cache  *fakeCache
	lock   *fakeLock
	outbox *fakeOutbox
	svc    *PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:  newFakePostStore(),
		users:  newFakeUserStore(),
		votes:  newFakeVoteStore(),
		cache:  newFakeCache(),
		lock:   &fakeLock{},
		outbox: &fakeOutbox{},
	}
	f.svc = NewPostService(f.posts, f.users, f.votes, f.cache, f.lock, f.outbox)
	return f
}

func (f *postFixture) addUser(t *testing.T, id, name string) {
	t.Helper()
	err := f.users.Create(context.Background(), &model.User{
		ID: id, Name: name, Email: id + "@example.com", Role: model.RoleNormal,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestCreatePost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	post, err := f.svc.Create(ctx, "userA", "first post")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.ID == "" {
		t.Fatal("create: empty id")
	}
	if post.Likes != 0 || post.Dislikes != 0 {
		t.Fatalf("create: counters %d/%d, want 0/0", post.Likes, post.Dislikes)
	}
	if post.CreatorID != "userA" {
		t.Fatalf("create: creator %q", post.CreatorID)
	}
	if !post.CreatedAt.Equal(post.UpdatedAt) {
		t.Fatal("create: createdAt != updatedAt")
	}

	stored, _ := f.posts.FindByID(ctx, post.ID)
	if stored == nil || stored.Content != "first post" {
		t.Fatalf("create: stored = %+v", stored)
	}
}

func TestCreatePostEmptyContent(t *testing.T) {
	f := newPostFixture()

	_, err := f.svc.Create(context.Background(), "userA", "")
	if pkg.HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("got %v, want BadRequest", err)
	}
}

func TestEditPost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	created := time.Now().Add(-time.Hour)
	_ = f.posts.Create(ctx, &model.Post{
		ID: "p1", CreatorID: "userA", Content: "old", Likes: 3, Dislikes: 1,
		CreatedAt: created, UpdatedAt: created,
	})

	if err := f.svc.Edit(ctx, "userA", "p1", "new"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	p, _ := f.posts.FindByID(ctx, "p1")
	if p.Content != "new" {
		t.Fatalf("content = %q", p.Content)
	}
	if p.Likes != 3 || p.Dislikes != 1 {
		t.Fatalf("edit touched counters: %d/%d", p.Likes, p.Dislikes)
	}
	if !p.UpdatedAt.After(created) {
		t.Fatal("edit did not bump updatedAt")
	}
}

// Only the creator may edit; even admins are refused.
func TestEditPostForbiddenForNonCreator(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA", Content: "old"})

	err := f.svc.Edit(ctx, "userB", "p1", "hijacked")
	if pkg.HTTPStatus(err) != http.StatusForbidden {
		t.Fatalf("got %v, want Forbidden", err)
	}

	p, _ := f.posts.FindByID(ctx, "p1")
	if p.Content != "old" {
		t.Fatalf("forbidden edit changed content to %q", p.Content)
	}
}

func TestEditPostNotFound(t *testing.T) {
	f := newPostFixture()

	err := f.svc.Edit(context.Background(), "userA", "missing", "new")
	if pkg.HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("got %v, want NotFound", err)
	}
}

func TestDeletePostCascadesVotes(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA", Likes: 1, Dislikes: 1})
	_ = f.votes.Create(ctx, &model.Vote{UserID: "userB", PostID: "p1", Like: true})
	_ = f.votes.Create(ctx, &model.Vote{UserID: "userC", PostID: "p1", Like: false})

	if err := f.svc.Delete(ctx, "userA", model.RoleNormal, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if p, _ := f.posts.FindByID(ctx, "p1"); p != nil {
		t.Fatal("post survived delete")
	}
	if votes, _ := f.votes.FindAllByPost(ctx, "p1"); len(votes) != 0 {
		t.Fatalf("%d vote rows survived the cascade", len(votes))
	}
	last := f.outbox.rows[len(f.outbox.rows)-1]
	if last.EventType != model.EventPostDeleted {
		t.Fatalf("last event = %s, want %s", last.EventType, model.EventPostDeleted)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA"})

	// stranger without the admin role is refused
	err := f.svc.Delete(ctx, "userB", model.RoleNormal, "p1")
	if pkg.HTTPStatus(err) != http.StatusForbidden {
		t.Fatalf("got %v, want Forbidden", err)
	}
	if p, _ := f.posts.FindByID(ctx, "p1"); p == nil {
		t.Fatal("forbidden delete removed the post")
	}

	// an admin who is not the creator may delete
	if err := f.svc.Delete(ctx, "userB", model.RoleAdmin, "p1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if p, _ := f.posts.FindByID(ctx, "p1"); p != nil {
		t.Fatal("admin delete left the post behind")
	}
}

func TestDeletePostNotFound(t *testing.T) {
	f := newPostFixture()

	err := f.svc.Delete(context.Background(), "userA", model.RoleAdmin, "missing")
	if pkg.HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("got %v, want NotFound", err)
	}
}

func TestListEnrichesCreator(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	f.addUser(t, "userA", "Alice")
	f.addUser(t, "userB", "Bob")
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA", Content: "a"})
	_ = f.posts.Create(ctx, &model.Post{ID: "p2", CreatorID: "userB", Content: "b"})

	views, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("%d views, want 2", len(views))
	}
	byID := map[string]PostView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	if byID["p1"].Creator.Name != "Alice" || byID["p2"].Creator.Name != "Bob" {
		t.Fatalf("creator snapshots wrong: %+v", byID)
	}
}

func TestGetByID(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	f.addUser(t, "userA", "Alice")
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA", Content: "a", Likes: 2, Dislikes: 1})

	view, err := f.svc.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Creator != (Creator{ID: "userA", Name: "Alice"}) {
		t.Fatalf("creator = %+v", view.Creator)
	}
	if view.Likes != 2 || view.Dislikes != 1 {
		t.Fatalf("counters %d/%d", view.Likes, view.Dislikes)
	}

	// the read backfilled the cache from the post row
	if likes, dislikes, ok, _ := f.cache.GetCached(ctx, "p1"); !ok || likes != 2 || dislikes != 1 {
		t.Fatalf("cache after read = %d/%d ok=%v", likes, dislikes, ok)
	}

	if _, err := f.svc.GetByID(ctx, "missing"); pkg.HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("got %v, want NotFound", err)
	}
}

func TestGetByIDPrefersCachedCounters(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	f.addUser(t, "userA", "Alice")
	_ = f.posts.Create(ctx, &model.Post{ID: "p1", CreatorID: "userA", Likes: 2, Dislikes: 0})
	_ = f.cache.Set(ctx, "p1", 5, 1)

	view, err := f.svc.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Likes != 5 || view.Dislikes != 1 {
		t.Fatalf("counters %d/%d, want cached 5/1", view.Likes, view.Dislikes)
	}
}
