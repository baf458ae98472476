package service

import (
	"errors"
	"testing"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/notify"
)

// challenge creates a pending friend battle from p1 to p2 and returns its id.
func challenge(t *testing.T, svc *BattleService, repo *mockRepo, p1, p2 *game.User, deckID uint, mode game.BattleMode) uint {
	t.Helper()
	repo.addFriends(p1.ID, p2.ID)
	sum, err := svc.CreateFriendBattle(p1.ID, p2.ID, deckID, mode)
	if err != nil {
		t.Fatalf("CreateFriendBattle: %v", err)
	}
	return sum.BattleID
}

func TestCreateAIBattleStartsInProgress(t *testing.T) {
	repo := newMockRepo()
	if _, err := EnsureAIIdentity(repo); err != nil {
		t.Fatalf("EnsureAIIdentity: %v", err)
	}
	user := repo.addUser("amira", false)
	deck := battleDeck(repo, user.ID, 50, 60, 50)
	svc := newTestService(repo)

	sum, err := svc.CreateAIBattle(user.ID, deck.ID, game.ModeFriendly)
	if err != nil {
		t.Fatalf("CreateAIBattle: %v", err)
	}
	if !sum.IsAIBattle || sum.Status != game.StatusInProgress {
		t.Fatalf("ai battle should start in_progress, got %+v", sum)
	}

	battle := repo.battles[sum.BattleID]
	if battle.Player2DeckID == nil {
		t.Fatal("ai deck of record should be set at creation")
	}
	sess := repo.sessions[sum.BattleID]
	if sess == nil {
		t.Fatal("session should be seeded at creation")
	}
	if sess.CurrentPhase != 1 || sess.Player1Score != 0 || sess.Player2Score != 0 {
		t.Fatalf("fresh session should be phase 1 with zero scores, got %+v", sess)
	}
}

func TestCreateAIBattleInvalidDeck(t *testing.T) {
	repo := newMockRepo()
	if _, err := EnsureAIIdentity(repo); err != nil {
		t.Fatalf("EnsureAIIdentity: %v", err)
	}
	user := repo.addUser("amira", false)
	deck := battleDeck(repo, user.ID, 50, 60, 50)
	repo.cards[repo.deckCards[deck.ID][0]].Listed = true
	svc := newTestService(repo)

	_, err := svc.CreateAIBattle(user.ID, deck.ID, game.ModeFriendly)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Result.Issues) == 0 {
		t.Fatal("validation error should carry the issue list")
	}
}

func TestCreateFriendBattlePendingWithNotification(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck.ID, game.ModeFriendly)

	if got := repo.battles[battleID].Status; got != game.StatusPending {
		t.Fatalf("friend battle should be pending, got %s", got)
	}
	if repo.sessions[battleID] != nil {
		t.Fatal("no session before the invitation is accepted")
	}
	notes, _ := repo.GetNotifications(p2.ID)
	if len(notes) != 1 || notes[0].Kind != notify.KindInvitation {
		t.Fatalf("opponent should get one invitation notification, got %+v", notes)
	}
}

func TestCreateFriendBattleGuards(t *testing.T) {
	repo := newMockRepo()
	ai, _ := EnsureAIIdentity(repo)
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	var ve *ValidationError
	if _, err := svc.CreateFriendBattle(p1.ID, p1.ID, deck.ID, game.ModeFriendly); !errors.As(err, &ve) {
		t.Fatalf("self challenge should fail validation, got %v", err)
	}
	if _, err := svc.CreateFriendBattle(p1.ID, ai.ID, deck.ID, game.ModeFriendly); !errors.As(err, &ve) {
		t.Fatalf("challenging the AI user should fail validation, got %v", err)
	}
	if _, err := svc.CreateFriendBattle(p1.ID, p2.ID, deck.ID, game.ModeFriendly); !errors.As(err, &ve) {
		t.Fatalf("challenging a non-friend should fail validation, got %v", err)
	}
	if _, err := svc.CreateFriendBattle(p1.ID, 9999, deck.ID, game.ModeFriendly); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAcceptInvitationRecipientOnly(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	outsider := repo.addUser("carol", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	deck2 := battleDeck(repo, p2.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)

	if _, err := svc.AcceptInvitation(battleID, p1.ID, deck1.ID); !errors.Is(err, ErrNotInvitationRecipient) {
		t.Fatalf("challenger accept should fail, got %v", err)
	}
	if _, err := svc.AcceptInvitation(battleID, outsider.ID, deck2.ID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("outsider should see not found, got %v", err)
	}
}

func TestAcceptInvitationStartsBattle(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	deck2 := battleDeck(repo, p2.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	// one minute short of the deadline is still acceptable
	repo.battles[battleID].CreatedAt = time.Now().Add(-24*time.Hour + time.Minute)

	res, err := svc.AcceptInvitation(battleID, p2.ID, deck2.ID)
	if err != nil {
		t.Fatalf("AcceptInvitation: %v", err)
	}
	if !res.Success {
		t.Fatalf("accept should succeed, got %+v", res)
	}

	battle := repo.battles[battleID]
	if battle.Status != game.StatusInProgress {
		t.Fatalf("battle should be in_progress, got %s", battle.Status)
	}
	if battle.Player2DeckID == nil || *battle.Player2DeckID != deck2.ID {
		t.Fatal("accepted deck should become the deck of record")
	}
	if sess := repo.sessions[battleID]; sess == nil || sess.CurrentPhase != 1 {
		t.Fatalf("session should be seeded at phase 1, got %+v", sess)
	}
	notes, _ := repo.GetNotifications(p1.ID)
	if len(notes) != 1 || notes[0].Kind != notify.KindInvitationAccepted {
		t.Fatalf("challenger should be told of the accept, got %+v", notes)
	}

	// a second answer is rejected as already responded
	res, err = svc.AcceptInvitation(battleID, p2.ID, deck2.ID)
	if err != nil {
		t.Fatalf("second accept errored: %v", err)
	}
	if res.Success {
		t.Fatal("second accept should be refused")
	}
}

func TestAcceptInvitationPastDeadline(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	deck2 := battleDeck(repo, p2.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	repo.battles[battleID].CreatedAt = time.Now().Add(-24*time.Hour - time.Minute)

	res, err := svc.AcceptInvitation(battleID, p2.ID, deck2.ID)
	if err != nil {
		t.Fatalf("AcceptInvitation: %v", err)
	}
	if res.Success {
		t.Fatal("stale invitation should not be acceptable")
	}
	// detection transitions the row, not just the response
	if got := repo.battles[battleID].Status; got != game.StatusExpired {
		t.Fatalf("stale invitation should be expired on read, got %s", got)
	}
}

func TestDeclineInvitation(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)

	res, err := svc.DeclineInvitation(battleID, p2.ID)
	if err != nil {
		t.Fatalf("DeclineInvitation: %v", err)
	}
	if !res.Success {
		t.Fatalf("decline should succeed, got %+v", res)
	}
	if got := repo.battles[battleID].Status; got != game.StatusExpired {
		t.Fatalf("declined invitation should be expired, got %s", got)
	}
	notes, _ := repo.GetNotifications(p1.ID)
	if len(notes) != 1 || notes[0].Kind != notify.KindInvitationDeclined {
		t.Fatalf("challenger should be told of the decline, got %+v", notes)
	}
}

func TestPendingInvitationsFilterStale(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	fresh := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	stale := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	repo.battles[stale].CreatedAt = time.Now().Add(-25 * time.Hour)

	got, err := svc.GetPendingInvitations(p2.ID)
	if err != nil {
		t.Fatalf("GetPendingInvitations: %v", err)
	}
	if len(got) != 1 || got[0].ID != fresh {
		t.Fatalf("only the fresh invitation should be listed, got %+v", got)
	}
}

func TestGetBattleStatus(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	outsider := repo.addUser("carol", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	battleID := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)

	// pending battles have no session and still report status
	view, err := svc.GetBattleStatus(battleID, p2.ID)
	if err != nil {
		t.Fatalf("GetBattleStatus: %v", err)
	}
	if view.Status != game.StatusPending || view.CurrentPhase != 0 {
		t.Fatalf("unexpected pending view %+v", view)
	}
	if view.YourSide != game.SidePlayer2 {
		t.Fatalf("expected player2 side, got %s", view.YourSide)
	}

	// the read mutates nothing: repeated calls agree
	again, err := svc.GetBattleStatus(battleID, p2.ID)
	if err != nil {
		t.Fatalf("second GetBattleStatus: %v", err)
	}
	if *again != *view {
		t.Fatalf("status read should be idempotent: %+v vs %+v", view, again)
	}

	if _, err := svc.GetBattleStatus(battleID, outsider.ID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("outsider should see not found, got %v", err)
	}
	if _, err := svc.GetBattleStatus(9999, p1.ID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("missing battle should be not found, got %v", err)
	}
}

func TestExpireStaleInvitationsSweep(t *testing.T) {
	repo := newMockRepo()
	p1 := repo.addUser("amira", false)
	p2 := repo.addUser("bruno", false)
	deck1 := battleDeck(repo, p1.ID, 50, 60, 50)
	svc := newTestService(repo)

	fresh := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	stale := challenge(t, svc, repo, p1, p2, deck1.ID, game.ModeFriendly)
	repo.battles[stale].CreatedAt = time.Now().Add(-25 * time.Hour)

	if n := ExpireStaleInvitations(repo, 24*time.Hour); n != 1 {
		t.Fatalf("expected one expiry, got %d", n)
	}
	if got := repo.battles[stale].Status; got != game.StatusExpired {
		t.Fatalf("stale invitation should be expired, got %s", got)
	}
	if got := repo.battles[fresh].Status; got != game.StatusPending {
		t.Fatalf("fresh invitation should stay pending, got %s", got)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	repo := newMockRepo()
	repo.stats[1] = &game.BattleStats{UserID: 1, TotalBattles: 10, Wins: 8, WinRate: 80}
	repo.stats[2] = &game.BattleStats{UserID: 2, TotalBattles: 2, Wins: 2, WinRate: 100}
	svc := newTestService(repo)

	byWins, err := svc.GetLeaderboard("wins", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if byWins[0].UserID != 1 {
		t.Fatalf("wins ordering should lead with user 1, got %+v", byWins)
	}

	byRate, err := svc.GetLeaderboard("win_rate", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if byRate[0].UserID != 2 {
		t.Fatalf("win_rate ordering should lead with user 2, got %+v", byRate)
	}
}
