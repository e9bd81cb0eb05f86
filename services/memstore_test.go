package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/cppla/dailychallenge/models"
)

// memStore is an in-memory TxManager. Transactions are serialized and
// rolled back by restoring a snapshot taken at begin.
type memStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	users       map[uuid.UUID]models.User
	challenges  map[uuid.UUID]models.Challenge
	submissions map[uuid.UUID]models.Submission

	// injected failures
	insertErr error
	updateErr error
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[uuid.UUID]models.User{},
		challenges:  map[uuid.UUID]models.Challenge{},
		submissions: map[uuid.UUID]models.Submission{},
	}
}

func (m *memStore) Stores() Stores {
	return Stores{
		Challenges:  memChallenges{m},
		Submissions: memSubmissions{m},
		Users:       memUsers{m},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(Stores) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	users, challenges, submissions := cloneMap(m.users), cloneMap(m.challenges), cloneMap(m.submissions)
	m.mu.RUnlock()

	if err := fn(m.Stores()); err != nil {
		m.mu.Lock()
		m.users, m.challenges, m.submissions = users, challenges, submissions
		m.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[V any](in map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// seedUser stores u directly and returns its id.
func (m *memStore) seedUser(u models.User) uuid.UUID {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
	return u.ID
}

func (m *memStore) seedChallenge(c models.Challenge) uuid.UUID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.mu.Lock()
	m.challenges[c.ID] = c
	m.mu.Unlock()
	return c.ID
}

func (m *memStore) user(id uuid.UUID) models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

func (m *memStore) challenge(id uuid.UUID) models.Challenge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.challenges[id]
}

func (m *memStore) submissionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.submissions)
}

func datePtr(t time.Time) *datatypes.Date {
	d := datatypes.Date(DateOf(t))
	return &d
}

type memChallenges struct{ m *memStore }

func (s memChallenges) FindByID(_ context.Context, id uuid.UUID) (*models.Challenge, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	c, ok := s.m.challenges[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s memChallenges) FindByActiveDate(_ context.Context, day time.Time) (*models.Challenge, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, c := range s.m.challenges {
		if DateOf(c.Day()).Equal(DateOf(day)) {
			return &c, nil
		}
	}
	return nil, nil
}

func (s memChallenges) ListActive(context.Context) ([]models.Challenge, error) {
	if s.m.listErr != nil {
		return nil, s.m.listErr
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []models.Challenge
	for _, c := range s.m.challenges {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s memChallenges) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c, ok := s.m.challenges[id]; ok {
		c.IsActive = active
		s.m.challenges[id] = c
	}
	return nil
}

func (s memChallenges) Create(_ context.Context, c *models.Challenge) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.challenges {
		if DateOf(existing.Day()).Equal(DateOf(c.Day())) {
			return ErrConflict
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.m.challenges[c.ID] = *c
	return nil
}

func (s memChallenges) before(day time.Time) []models.Challenge {
	var out []models.Challenge
	for _, c := range s.m.challenges {
		if c.Day().Before(DateOf(day)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day().After(out[j].Day()) })
	return out
}

func (s memChallenges) ListBefore(_ context.Context, day time.Time, offset, limit int) ([]models.Challenge, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	list := s.before(day)
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s memChallenges) CountBefore(_ context.Context, day time.Time) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.before(day))), nil
}

type memSubmissions struct{ m *memStore }

func (s memSubmissions) Exists(ctx context.Context, userID, challengeID uuid.UUID) (bool, error) {
	sub, err := s.FindByUserAndChallenge(ctx, userID, challengeID)
	return sub != nil, err
}

func (s memSubmissions) Insert(_ context.Context, sub *models.Submission) error {
	if s.m.insertErr != nil {
		return s.m.insertErr
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.submissions {
		if existing.UserID == sub.UserID && existing.ChallengeID == sub.ChallengeID {
			return ErrDuplicateSubmission
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	s.m.submissions[sub.ID] = *sub
	return nil
}

func (s memSubmissions) FindByUserAndChallenge(_ context.Context, userID, challengeID uuid.UUID) (*models.Submission, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, sub := range s.m.submissions {
		if sub.UserID == userID && sub.ChallengeID == challengeID {
			return &sub, nil
		}
	}
	return nil, nil
}

func (s memSubmissions) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.Submission, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []models.Submission
	for _, sub := range s.m.submissions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memSubmissions) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, err := s.ListByUser(ctx, userID, int(^uint(0)>>1))
	return int64(len(list)), err
}

func (s memSubmissions) SubmittedChallengeIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[uuid.UUID]bool{}
	for _, sub := range s.m.submissions {
		if sub.UserID == userID && want[sub.ChallengeID] {
			out[sub.ChallengeID] = true
		}
	}
	return out, nil
}

type memUsers struct{ m *memStore }

func (s memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s memUsers) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.FindByID(ctx, id)
}

func (s memUsers) find(match func(models.User) bool) *models.User {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email }), nil
}

func (s memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Username == username }), nil
}

func (s memUsers) Create(_ context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return ErrConflict
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.m.users[u.ID] = *u
	return nil
}

func (s memUsers) Update(_ context.Context, u *models.User) error {
	if s.m.updateErr != nil {
		return s.m.updateErr
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.users[u.ID] = *u
	return nil
}

func (s memUsers) Leaderboard(_ context.Context, limit int) ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.User, 0, len(s.m.users))
	for _, u := range s.m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CurrentStreak != b.CurrentStreak {
			return a.CurrentStreak > b.CurrentStreak
		}
		return a.LongestStreak > b.LongestStreak
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memUsers) CountWithMorePoints(_ context.Context, points int) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var n int64
	for _, u := range s.m.users {
		if u.TotalPoints > points {
			n++
		}
	}
	return n, nil
}
