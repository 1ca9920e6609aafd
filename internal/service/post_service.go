package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Postbook/internal/model"
	"Postbook/internal/pkg"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Creator is the denormalized author snapshot attached to post reads.
type Creator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostView is a post as served to clients.
type PostView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Creator   Creator   `json:"creator"`
}

type PostService struct {
	posts  PostStore
	users  UserStore
	votes  VoteStore
	cache  CountCache
	lock   CountLock
	outbox OutboxStore
}

func NewPostService(posts PostStore, users UserStore, votes VoteStore, cache CountCache, lock CountLock, outbox OutboxStore) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		votes:  votes,
		cache:  cache,
		lock:   lock,
		outbox: outbox,
	}
}

func (s *PostService) Create(ctx context.Context, actorID, content string) (*model.Post, error) {
	if content == "" {
		return nil, pkg.BadRequest("content required")
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.NewString(),
		CreatorID: actorID,
		Content:   content,
		Likes:     0,
		Dislikes:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit rewrites a post's content. Only the creator may edit, admins
// included in the refusal.
func (s *PostService) Edit(ctx context.Context, actorID, postID, content string) error {
	if content == "" {
		return pkg.BadRequest("content required")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return pkg.NotFound("post not found")
	}
	if post.CreatorID != actorID {
		return pkg.Forbidden("only the creator can edit a post")
	}

	post.Content = content
	post.UpdatedAt = time.Now()
	return s.posts.UpdateContent(ctx, post)
}

// Delete removes a post and cascades its votes first. Allowed for the
// creator and for admins.
func (s *PostService) Delete(ctx context.Context, actorID, actorRole, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return pkg.NotFound("post not found")
	}
	if post.CreatorID != actorID && actorRole != model.RoleAdmin {
		return pkg.Forbidden("no permission to delete this post")
	}

	if err := s.votes.DeleteAllByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, postID)

	payload, _ := json.Marshal(map[string]any{"post_id": postID, "deleted_by": actorID})
	if err := s.outbox.Append(ctx, &model.EventOutbox{
		EventType: model.EventPostDeleted,
		UserID:    actorID,
		PostID:    postID,
		Payload:   string(payload),
	}); err != nil {
		pkg.L.Warn("outbox append failed",
			zap.String("event", model.EventPostDeleted),
			zap.String("post_id", postID),
			zap.Error(err))
	}
	return nil
}

// List returns all posts with their creator snapshots, joined in memory
// from a single user scan.
func (s *PostService) List(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toView(&p, Creator{ID: p.CreatorID, Name: names[p.CreatorID]}))
	}
	return views, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, pkg.NotFound("post not found")
	}

	creator := Creator{ID: post.CreatorID}
	if user, err := s.users.FindByID(ctx, post.CreatorID); err == nil && user != nil {
		creator.Name = user.Name
	}

	likes, dislikes := s.counters(ctx, post)
	view := toView(post, creator)
	view.Likes = likes
	view.Dislikes = dislikes
	return &view, nil
}

// counters prefers the cached pair and lazily rebuilds the cache from the
// post row under the per-post lock on a miss.
func (s *PostService) counters(ctx context.Context, post *model.Post) (int64, int64) {
	if likes, dislikes, ok, err := s.cache.GetCached(ctx, post.ID); err == nil && ok {
		return likes, dislikes
	}

	token := fmt.Sprintf("%s-%d", post.ID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, post.ID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, post.ID, token) }()

		// double check under the lock
		if likes, dislikes, ok, err := s.cache.GetCached(ctx, post.ID); err == nil && ok {
			return likes, dislikes
		}
		_ = s.cache.Set(ctx, post.ID, post.Likes, post.Dislikes)
	}
	return post.Likes, post.Dislikes
}

func toView(post *model.Post, creator Creator) PostView {
	return PostView{
		ID:        post.ID,
		Content:   post.Content,
		Likes:     post.Likes,
		Dislikes:  post.Dislikes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Creator:   creator,
	}
}
