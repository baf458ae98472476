package notify

import (
	"fmt"
	"net/smtp"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/evrtek/geobeastProdV1-sub000/internal/game"
	"github.com/evrtek/geobeastProdV1-sub000/internal/logging"
	"github.com/evrtek/geobeastProdV1-sub000/internal/storage"
	"github.com/google/uuid"
)

// Mailer sends a single outbound message. Delivery is best effort
// everywhere in this package: failures are logged and swallowed, never
// propagated to the battle flow.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer is the production Mailer over net/smtp.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	Host     string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("Message-ID: <%s@%s>\r\nFrom: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		uuid.NewString(), m.Host, m.From, to, subject, body)
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg))
}

// Notifier writes in-app notifications and sends best-effort email.
type Notifier struct {
	repo   storage.Repository
	mailer Mailer
}

func NewNotifier(repo storage.Repository, mailer Mailer) *Notifier {
	return &Notifier{repo: repo, mailer: mailer}
}

// Notify inserts an in-app notification and emails the recipient. Neither
// failure reaches the caller.
func (n *Notifier) Notify(user *game.User, battleID uint, kind, message string) {
	note := &game.Notification{UserID: user.ID, BattleID: battleID, Kind: kind, Message: message}
	if err := n.repo.CreateNotification(note); err != nil {
		logging.Error("failed to insert notification", err, logging.Fields{
			constants.LogFieldUserID:   user.ID,
			constants.LogFieldBattleID: battleID,
			"kind":                     kind,
		})
	}
	if n.mailer == nil || user.Email == "" {
		return
	}
	if err := n.mailer.Send(user.Email, "Card Arena: "+kind, message); err != nil {
		logging.Warn("best-effort email failed", logging.Fields{
			constants.LogFieldUserID:   user.ID,
			constants.LogFieldBattleID: battleID,
			"kind":                     kind,
			"error":                    err.Error(),
		})
	}
}

// Notification kinds used by the battle flow.
const (
	KindInvitation         = "battle_invitation"
	KindInvitationAccepted = "invitation_accepted"
	KindInvitationDeclined = "invitation_declined"
	KindBattleFinished     = "battle_finished"
)
