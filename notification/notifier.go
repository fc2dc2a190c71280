package notification

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Notifier is the outbound delivery collaborator. Every call returns
// an opaque delivery id on success. Callers in the lifecycle engine
// treat failures as non-fatal: a failed delivery never unwinds the
// transition that triggered it.
type Notifier interface {
	SendAcceptanceEmail(userID int64, jobTitle string, interviewDate time.Time) (string, error)
	SendRejectionEmail(userID int64, jobTitle, reason string) (string, error)
	SendPostInterviewRejectionEmail(userID int64, jobTitle, reason string) (string, error)
	SendHiredEmail(userID int64, jobTitle, employerName string) (string, error)
	AddProfileNotification(userID int64, message string) (string, error)
}

// EmailNotifier renders the configured templates and hands the result
// to the delivery transport. The default transport records the
// rendered message in the service log, which is also what the
// integration environment runs with.
type EmailNotifier struct {
	templates *Templates
	transport Transport
}

// Transport delivers one rendered message.
type Transport interface {
	Deliver(userID int64, subject, body string) error
}

func NewEmailNotifier(templates *Templates, transport Transport) *EmailNotifier {
	if transport == nil {
		transport = &logTransport{}
	}
	return &EmailNotifier{templates: templates, transport: transport}
}

func (n *EmailNotifier) deliver(userID int64, template EmailTemplate, vars map[string]string) (string, error) {
	subject, body := template.Render(vars)
	if err := n.transport.Deliver(userID, subject, body); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func (n *EmailNotifier) SendAcceptanceEmail(userID int64, jobTitle string, interviewDate time.Time) (string, error) {
	return n.deliver(userID, n.templates.Acceptance, map[string]string{
		"job_title":      jobTitle,
		"interview_date": interviewDate.Format("2006-01-02 15:04"),
	})
}

func (n *EmailNotifier) SendRejectionEmail(userID int64, jobTitle, reason string) (string, error) {
	return n.deliver(userID, n.templates.Rejection, map[string]string{
		"job_title": jobTitle,
		"reason":    reason,
	})
}

func (n *EmailNotifier) SendPostInterviewRejectionEmail(userID int64, jobTitle, reason string) (string, error) {
	return n.deliver(userID, n.templates.PostInterviewRejection, map[string]string{
		"job_title": jobTitle,
		"reason":    reason,
	})
}

func (n *EmailNotifier) SendHiredEmail(userID int64, jobTitle, employerName string) (string, error) {
	return n.deliver(userID, n.templates.Hired, map[string]string{
		"job_title":     jobTitle,
		"employer_name": employerName,
	})
}

func (n *EmailNotifier) AddProfileNotification(userID int64, message string) (string, error) {
	if err := n.transport.Deliver(userID, "profile_notification", message); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

type logTransport struct{}

func (t *logTransport) Deliver(userID int64, subject, body string) error {
	log.WithFields(log.Fields{
		"user_id": userID,
		"subject": subject,
	}).Info("notification delivered")
	return nil
}
