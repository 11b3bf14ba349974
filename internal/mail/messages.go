package mail

import (
	"fmt"
	"html"
	"time"

	"github.com/spec-kit/content-service/internal/domain"
)

// ClientConfirmation thanks the visitor for the submission.
func ClientConfirmation(sub domain.ContactSubmission, company string) *Message {
	name := html.EscapeString(sub.Name)
	return &Message{
		To:      sub.Email,
		Subject: "✅ Váš požadavek byl úspěšně přijat",
		Text:    fmt.Sprintf("Dobrý den, %s! Děkujeme za vaši žádost. Brzy se vám ozveme.", sub.Name),
		HTML: fmt.Sprintf(`<div style="font-family:Arial,sans-serif;line-height:1.6;color:#333;text-align:center">
  <h2>Dobrý den, %s!</h2>
  <p>Děkujeme za vaši žádost. Vaši zprávu jsme obdrželi a brzy se s vámi spojíme.</p>
  <p><strong>%s</strong></p>
</div>`, name, html.EscapeString(company)),
	}
}

// OwnerNotification forwards the submission to the site owner.
func OwnerNotification(sub domain.ContactSubmission, owner string, loc *time.Location) *Message {
	if loc == nil {
		loc = time.UTC
	}
	return &Message{
		To:      owner,
		ReplyTo: sub.Email,
		Subject: "Nová žádost od klienta",
		Text: fmt.Sprintf(`📩 Nová žádost

Jméno:   %s
E-mail:  %s
Telefon: %s

Zpráva:
%s

Odesláno: %s
`, sub.Name, sub.Email, sub.Phone, sub.Message, sub.CreatedAt.In(loc).Format("02.01.2006 15:04:05")),
	}
}
