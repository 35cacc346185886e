// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// Message is one composed revision request.
type Message struct {
	PaperID int
	To      string
	Subject string
	Body    string
}

// MIME builds the message for transport. With a non-nil cfg the From
// header is set to the committee account and the account gets a blind
// copy.
func (m Message) MIME(cfg *SMTPConfig) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if cfg != nil {
		if err := msg.FromFormat(cfg.Username, cfg.User); err != nil {
			return nil, fmt.Errorf("setting sender %s: %w", cfg.User, err)
		}
		if err := msg.Bcc(cfg.User); err != nil {
			return nil, fmt.Errorf("setting bcc %s: %w", cfg.User, err)
		}
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("setting recipient %s: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	return msg, nil
}

// String renders the headers and body as plain text.
func (m Message) String() string {
	return "To: " + m.To + "\nSubject: " + m.Subject + "\n\n" + m.Body
}

// Compose fills the subject and body templates for every item. The body
// placeholders are {name}, {title} and {errors}; the subject placeholder
// is {id}. Doubled braces produce literal braces. An item whose contact
// has no email address is an error.
func Compose(items []types.ReviseItem, subject, body string) ([]Message, error) {
	msgs := make([]Message, 0, len(items))
	for _, it := range items {
		if it.Contact.Email == "" {
			return nil, fmt.Errorf("email address not found for %s (paper %d)", it.Contact.Name, it.PaperID)
		}
		subj, err := fill(subject, map[string]string{"id": strconv.Itoa(it.PaperID)})
		if err != nil {
			return nil, fmt.Errorf("subject template: %w", err)
		}
		text, err := fill(body, map[string]string{
			"name":   it.Contact.Name,
			"title":  it.Title,
			"errors": ErrorList(it.Errors, it.ExtMsg),
		})
		if err != nil {
			return nil, fmt.Errorf("body template: %w", err)
		}
		msgs = append(msgs, Message{
			PaperID: it.PaperID,
			To:      it.Contact.Email,
			Subject: subj,
			Body:    text,
		})
	}
	return msgs, nil
}

// ErrorList numbers the errors one per line and appends the committee
// hint when there is one.
func ErrorList(errs []string, hint string) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = strconv.Itoa(i+1) + ". " + e
	}
	s := strings.Join(lines, "\n")
	if hint != "" {
		s += "\n\nHint message from committee: " + hint
	}
	return s
}

// fill replaces each {key} in tmpl with values[key]; {{ and }} stand for
// literal braces. Unknown keys and unpaired braces are errors.
func fill(tmpl string, values map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		switch {
		case strings.HasPrefix(tmpl[i:], "{{"):
			b.WriteByte('{')
			i += 2
		case strings.HasPrefix(tmpl[i:], "}}"):
			b.WriteByte('}')
			i += 2
		case tmpl[i] == '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unclosed '{' at offset %d", i)
			}
			key := tmpl[i+1 : i+end]
			v, ok := values[key]
			if !ok {
				return "", fmt.Errorf("unknown placeholder {%s}", key)
			}
			b.WriteString(v)
			i += end + 1
		case tmpl[i] == '}':
			return "", fmt.Errorf("single '}' at offset %d", i)
		default:
			b.WriteByte(tmpl[i])
			i++
		}
	}
	return b.String(), nil
}

// Save writes each message as <paper id>.txt into dir for review before
// sending. cfg sets the From header as Send would; it may be nil.
func Save(msgs []Message, dir string, cfg *SMTPConfig) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(msgs))
	for _, m := range msgs {
		mime, err := m.MIME(cfg)
		if err != nil {
			return nil, fmt.Errorf("paper %d: %w", m.PaperID, err)
		}
		path := filepath.Join(dir, strconv.Itoa(m.PaperID)+".txt")
		if err := writeMsg(path, mime); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeMsg(path string, msg *gomail.Msg) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := msg.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
