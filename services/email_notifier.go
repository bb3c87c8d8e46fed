package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/kdcreatives/kdcreatives-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gopkg.in/gomail.v2"
)

// UserDirectory looks up the account behind a client requester so the
// notifier knows where to send mail.
type UserDirectory interface {
	FindUser(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// EmailNotifier emails the requester when their quotation changes. It
// implements Notifier and is always dispatched asynchronously by the
// lifecycle manager, so a slow or dead SMTP server never blocks a request.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	users  UserDirectory
}

func NewEmailNotifierFromEnv(users UserDirectory) *EmailNotifier {
	port, err := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(
			os.Getenv("EMAIL_HOST"),
			port,
			os.Getenv("EMAIL_USER"),
			os.Getenv("EMAIL_PASSWORD"),
		),
		from:  os.Getenv("EMAIL_USER"),
		users: users,
	}
}

var quoteUpdateTmpl = template.Must(template.New("quoteUpdate").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Quote Request Update</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>Your quote request for "<strong>{{.ProjectName}}</strong>" is now <strong>{{.Status}}</strong>.</p>
  {{if .QuotedPrice}}<p>Quoted price: ₱{{printf "%.2f" .QuotedPrice}}</p>{{end}}
  {{if .AdminNotes}}<p>Notes from our team: {{.AdminNotes}}</p>{{end}}
  <p>Log in to your account to view the full details.</p>
</body>
</html>`))

func (n *EmailNotifier) Notify(ctx context.Context, q *models.QuotationRequest) error {
	name, email, err := n.recipient(ctx, q)
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("quotation %s has no recipient email", q.ID.Hex())
	}

	var body bytes.Buffer
	err = quoteUpdateTmpl.Execute(&body, map[string]any{
		"Name":        name,
		"ProjectName": q.ProjectName,
		"Status":      q.Status,
		"QuotedPrice": q.QuotedPrice,
		"AdminNotes":  q.AdminNotes,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Quote Request Update: %s", q.ProjectName))
	m.SetBody("text/html", body.String())

	return n.dialer.DialAndSend(m)
}

func (n *EmailNotifier) recipient(ctx context.Context, q *models.QuotationRequest) (name, email string, err error) {
	if q.Requester.IsGuest() {
		return q.Requester.Guest.Name, q.Requester.Guest.Email, nil
	}
	user, err := n.users.FindUser(ctx, q.Requester.ClientID)
	if err != nil {
		return "", "", err
	}
	return user.Name, user.Email, nil
}
