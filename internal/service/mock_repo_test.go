package service

import (
	"sort"
	"sync"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
)

// mockRepo is a map-backed storage.Repository for service tests. The mutex
// makes reads and writes safe for tests that exercise the service from
// multiple goroutines; Transaction does not hold it, individual calls do.
type mockRepo struct {
	mu        sync.Mutex
	users     map[uint]*game.User
	perms     map[uint]*game.ParentalPermission
	cards     map[uint]*game.Card
	decks     map[uint]*game.Deck
	deckCards map[uint][]uint
	friends   map[[2]uint]bool
	battles   map[uint]*game.Battle
	sessions  map[uint]*game.BattleSession
	records   []game.PhaseRecord
	stats     map[uint]*game.BattleStats
	notes     []game.Notification
	nextID    uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:     map[uint]*game.User{},
		perms:     map[uint]*game.ParentalPermission{},
		cards:     map[uint]*game.Card{},
		decks:     map[uint]*game.Deck{},
		deckCards: map[uint][]uint{},
		friends:   map[[2]uint]bool{},
		battles:   map[uint]*game.Battle{},
		sessions:  map[uint]*game.BattleSession{},
		stats:     map[uint]*game.BattleStats{},
	}
}

func (m *mockRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) addUser(name string, child bool) *game.User {
	u := &game.User{Name: name, Email: name + "@example.com", IsChild: child}
	u.ID = m.id()
	m.users[u.ID] = u
	return u
}

func (m *mockRepo) addCard(owner uint, name string, t game.CardType, speed, attack, defense int) *game.Card {
	c := &game.Card{OwnerID: owner, Name: name, Type: t, Speed: speed, Attack: attack, Defense: defense}
	c.ID = m.id()
	m.cards[c.ID] = c
	return c
}

func (m *mockRepo) addDeck(owner uint, cards ...*game.Card) *game.Deck {
	d := &game.Deck{OwnerID: owner, Name: "deck"}
	d.ID = m.id()
	m.decks[d.ID] = d
	ids := make([]uint, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	m.deckCards[d.ID] = ids
	return d
}

func (m *mockRepo) addFriends(a, b uint) {
	m.friends[[2]uint{a, b}] = true
}

func (m *mockRepo) Transaction(fn func(storage.Repository) error) error { return fn(m) }

func (m *mockRepo) GetUserByID(id uint) (*game.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) CreateUser(u *game.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) FindAIUser() (*game.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.IsAI {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) GetParentalPermission(userID uint) (*game.ParentalPermission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.perms[userID]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) AreFriends(a, b uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.friends[[2]uint{a, b}] || m.friends[[2]uint{b, a}], nil
}

func (m *mockRepo) getDeck(id uint) (*game.Deck, error) {
	d, ok := m.decks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *d
	out.Cards = nil
	for _, cid := range m.deckCards[id] {
		out.Cards = append(out.Cards, *m.cards[cid])
	}
	return &out, nil
}

func (m *mockRepo) GetDeckByID(id uint) (*game.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getDeck(id)
}

func (m *mockRepo) GetDeckByOwner(ownerID uint) (*game.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint, 0, len(m.decks))
	for id := range m.decks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if m.decks[id].OwnerID == ownerID {
			return m.getDeck(id)
		}
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) GetCardByID(id uint) (*game.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cards[id]; ok {
		return c, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) CreateCard(c *game.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.id()
	}
	m.cards[c.ID] = c
	return nil
}

func (m *mockRepo) CreateDeck(d *game.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.id()
	}
	ids := make([]uint, len(d.Cards))
	for i := range d.Cards {
		ids[i] = d.Cards[i].ID
	}
	m.decks[d.ID] = d
	m.deckCards[d.ID] = ids
	return nil
}

func (m *mockRepo) UpdateCardOwner(cardID, newOwnerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[cardID]
	if !ok {
		return storage.ErrNotFound
	}
	c.OwnerID = newOwnerID
	return nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.id()
	b.CreatedAt = time.Now()
	stored := *b
	m.battles[b.ID] = &stored
	return nil
}

// GetBattleByID hands each caller its own copy, matching the row-per-read
// behavior of the real repository.
func (m *mockRepo) GetBattleByID(id uint) (*game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.battles[id]; ok {
		out := *b
		return &out, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) UpdateBattle(b *game.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *b
	m.battles[b.ID] = &stored
	return nil
}

func (m *mockRepo) GetPendingInvitations(userID uint) ([]game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Battle
	for _, b := range m.battles {
		if b.Player2ID == userID && b.Status == game.StatusPending && !b.IsAIBattle {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) FindStalePending(cutoff time.Time) ([]game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Battle
	for _, b := range m.battles {
		if b.Status == game.StatusPending && !b.CreatedAt.After(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateSession(s *game.BattleSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.sessions[s.BattleID] = s
	return nil
}

func (m *mockRepo) GetSessionByBattleID(battleID uint) (*game.BattleSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[battleID]; ok {
		return s, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockRepo) UpdateSession(s *game.BattleSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.BattleID] = s
	return nil
}

func (m *mockRepo) CreatePhaseRecord(r *game.PhaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	m.records = append(m.records, *r)
	return nil
}

func (m *mockRepo) GetPhaseRecords(battleID uint) ([]game.PhaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.PhaseRecord
	for _, r := range m.records {
		if r.BattleID == battleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepo) GetStatsByUserID(userID uint) (*game.BattleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stats[userID]; ok {
		out := *s
		return &out, nil
	}
	return &game.BattleStats{UserID: userID}, nil
}

func (m *mockRepo) SaveStats(s *game.BattleStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	m.stats[s.UserID] = &stored
	return nil
}

func (m *mockRepo) GetTopPlayers(orderBy string, limit int) ([]game.BattleStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]game.BattleStats, 0, len(m.stats))
	for _, s := range m.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if orderBy == "win_rate" {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].Wins > out[j].Wins
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) CreateNotification(n *game.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	m.notes = append(m.notes, *n)
	return nil
}

func (m *mockRepo) GetNotifications(userID uint) ([]game.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Notification
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepo) MarkNotificationRead(id, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notes {
		if m.notes[i].ID == id && m.notes[i].UserID == userID {
			m.notes[i].Read = true
			return nil
		}
	}
	return storage.ErrNotFound
}
