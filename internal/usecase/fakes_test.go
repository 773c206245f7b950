package usecase

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"cliphub/internal/entity"

	"gorm.io/gorm"
)

// In-memory repositories with copy semantics, so tests can drive the full
// login/refresh/rotation flow without sharing pointers with the usecase.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]entity.User
	nextID int

	createErr error
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

func (r *fakeUserRepo) add(user entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *fakeUserRepo) stored(id string) entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsernameOrEmail(username, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) update(id string, mutate func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mutate(&user)
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) UpdateDetails(id, fullName, email string) error {
	return r.update(id, func(u *entity.User) { u.FullName = fullName; u.Email = email })
}

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	return r.update(id, func(u *entity.User) { u.Password = passwordHash })
}

func (r *fakeUserRepo) UpdateAvatarURL(id, url string) error {
	return r.update(id, func(u *entity.User) { u.AvatarURL = url })
}

func (r *fakeUserRepo) UpdateCoverImageURL(id, url string) error {
	return r.update(id, func(u *entity.User) { u.CoverImageURL = url })
}

func (r *fakeUserRepo) UpdateRefreshToken(id, token string) error {
	return r.update(id, func(u *entity.User) { u.RefreshToken = token })
}

// fakeStorage mimics the object-storage client with a fixed base URL.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
	emptyURL  bool
	failKey   string
}

func (s *fakeStorage) UploadFile(key string, _ io.Reader, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if s.failKey != "" && key == s.failKey {
		return "", fmt.Errorf("upload of %s failed", key)
	}
	if s.emptyURL {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, key)
	return "https://media.test/" + key, nil
}

func (s *fakeStorage) DeleteFile(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) KeyFromURL(rawURL string) string {
	if !strings.HasPrefix(rawURL, "https://media.test/") {
		return ""
	}
	return strings.TrimPrefix(rawURL, "https://media.test/")
}

// fakePublisher records published events behind a mutex since publishing
// happens on a separate goroutine.
type fakePublisher struct {
	mu     sync.Mutex
	events []map[string]interface{}
	done   chan struct{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{done: make(chan struct{}, 8)}
}

func (p *fakePublisher) PublishAccountEvent(event map[string]interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakePublisher) published() []map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]map[string]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

type fakeChannelRepo struct {
	subscribers   map[string]int64
	subscriptions map[string]int64
	edges         map[string]bool // "subscriber:channel"
	err           error
}

func (r *fakeChannelRepo) CountSubscribers(channelID string) (int64, error) {
	return r.subscribers[channelID], r.err
}

func (r *fakeChannelRepo) CountSubscriptions(subscriberID string) (int64, error) {
	return r.subscriptions[subscriberID], r.err
}

func (r *fakeChannelRepo) IsSubscribed(subscriberID, channelID string) (bool, error) {
	return r.edges[subscriberID+":"+channelID], r.err
}

type fakeWatchRepo struct {
	videos    map[string]entity.Video
	history   map[string][]*entity.WatchHistoryItem
	appended  []string // "user:video"
	viewBumps []string
	appendErr error
}

func (r *fakeWatchRepo) GetVideo(videoID string) (*entity.Video, error) {
	video, ok := r.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := video
	return &copied, nil
}

func (r *fakeWatchRepo) Append(userID, videoID string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, userID+":"+videoID)
	return nil
}

func (r *fakeWatchRepo) IncrementViews(videoID string) error {
	r.viewBumps = append(r.viewBumps, videoID)
	return nil
}

func (r *fakeWatchRepo) ListForUser(userID string) ([]*entity.WatchHistoryItem, error) {
	items, ok := r.history[userID]
	if !ok {
		return []*entity.WatchHistoryItem{}, nil
	}
	return items, nil
}
