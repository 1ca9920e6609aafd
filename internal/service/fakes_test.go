package service

import (
	"context"
	"sort"

	"Postbook/internal/model"
)

// map-backed store fakes implementing the interfaces in stores.go

type fakeUserStore struct {
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) FindAll(_ context.Context) ([]model.User, error) {
	list := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type fakePostStore struct {
	posts map[string]model.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[string]model.Post)}
}

func (f *fakePostStore) Create(_ context.Context, post *model.Post) error {
	f.posts[post.ID] = *post
	return nil
}

func (f *fakePostStore) FindAll(_ context.Context) ([]model.Post, error) {
	list := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakePostStore) FindByID(_ context.Context, id string) (*model.Post, error) {
	if p, ok := f.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePostStore) UpdateContent(_ context.Context, post *model.Post) error {
	p := f.posts[post.ID]
	p.Content = post.Content
	p.UpdatedAt = post.UpdatedAt
	f.posts[post.ID] = p
	return nil
}

func (f *fakePostStore) UpdateCounters(_ context.Context, id string, likes, dislikes int64) error {
	p := f.posts[id]
	p.Likes = likes
	p.Dislikes = dislikes
	f.posts[id] = p
	return nil
}

func (f *fakePostStore) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) ListCounters(_ context.Context, limit int) ([]model.PostCounters, error) {
	var rows []model.PostCounters
	for _, p := range f.posts {
		rows = append(rows, model.PostCounters{ID: p.ID, Likes: p.Likes, Dislikes: p.Dislikes})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeVoteStore struct {
	votes map[string]model.Vote
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{votes: make(map[string]model.Vote)}
}

func voteKey(userID, postID string) string { return userID + "|" + postID }

func (f *fakeVoteStore) FindByUserAndPost(_ context.Context, userID, postID string) (*model.Vote, error) {
	if v, ok := f.votes[voteKey(userID, postID)]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f *fakeVoteStore) FindAllByPost(_ context.Context, postID string) ([]model.Vote, error) {
	var list []model.Vote
	for _, v := range f.votes {
		if v.PostID == postID {
			list = append(list, v)
		}
	}
	return list, nil
}

func (f *fakeVoteStore) Create(_ context.Context, vote *model.Vote) error {
	f.votes[voteKey(vote.UserID, vote.PostID)] = *vote
	return nil
}

func (f *fakeVoteStore) Update(_ context.Context, vote *model.Vote) error {
	v := f.votes[voteKey(vote.UserID, vote.PostID)]
	v.UserID = vote.UserID
	v.PostID = vote.PostID
	v.Like = vote.Like
	f.votes[voteKey(vote.UserID, vote.PostID)] = v
	return nil
}

func (f *fakeVoteStore) DeleteByUserAndPost(_ context.Context, userID, postID string) error {
	delete(f.votes, voteKey(userID, postID))
	return nil
}

func (f *fakeVoteStore) DeleteAllByPost(_ context.Context, postID string) error {
	for k, v := range f.votes {
		if v.PostID == postID {
			delete(f.votes, k)
		}
	}
	return nil
}

func (f *fakeVoteStore) CountByPost(_ context.Context, postID string) (likes, dislikes int64, err error) {
	for _, v := range f.votes {
		if v.PostID != postID {
			continue
		}
		if v.Like {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

type fakeOutbox struct {
	rows    []model.EventOutbox
	nextID  uint64
	sent    []uint64
	retried []uint64
}

func (f *fakeOutbox) Append(_ context.Context, event *model.EventOutbox) error {
	f.nextID++
	event.ID = f.nextID
	f.rows = append(f.rows, *event)
	return nil
}

func (f *fakeOutbox) ListPending(_ context.Context, limit int) ([]model.EventOutbox, error) {
	var pending []model.EventOutbox
	for _, r := range f.rows {
		if r.Status == model.OutboxPending {
			pending = append(pending, r)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, id uint64) error {
	f.sent = append(f.sent, id)
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = model.OutboxSent
		}
	}
	return nil
}

func (f *fakeOutbox) MarkRetry(_ context.Context, id uint64, maxRetry int) error {
	f.retried = append(f.retried, id)
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Retry++
			if f.rows[i].Retry >= maxRetry {
				f.rows[i].Status = model.OutboxFailed
			}
		}
	}
	return nil
}

type fakeCache struct {
	counts  map[string][2]int64
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: make(map[string][2]int64)}
}

func (f *fakeCache) GetCached(_ context.Context, postID string) (int64, int64, bool, error) {
	if c, ok := f.counts[postID]; ok {
		return c[0], c[1], true, nil
	}
	return 0, 0, false, nil
}

func (f *fakeCache) Set(_ context.Context, postID string, likes, dislikes int64) error {
	f.counts[postID] = [2]int64{likes, dislikes}
	return nil
}

func (f *fakeCache) Delete(_ context.Context, postID string) error {
	delete(f.counts, postID)
	f.deletes++
	return nil
}

type fakeLock struct {
	deny bool
}

func (f *fakeLock) Acquire(_ context.Context, _, _ string) (bool, error) {
	return !f.deny, nil
}

func (f *fakeLock) Release(_ context.Context, _, _ string) error { return nil }

type fakeSessions struct {
	tokens map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]string)}
}

func (f *fakeSessions) Store(_ context.Context, userID, token string) error {
	f.tokens[userID] = token
	return nil
}
