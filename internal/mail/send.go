// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// Dump file names inside the dump directory.
const (
	SentDump   = "email.dump"
	FailedDump = "failed_email.dump"

	// DefaultDumpDir is used when Options.DumpDir is empty.
	DefaultDumpDir = ".log"
)

// Transport delivers a message. In a dry run it only connects and
// authenticates.
type Transport interface {
	Send(ctx context.Context, msg *gomail.Msg, dryRun bool) error
}

// SMTPTransport sends through the configured SMTP server with mandatory
// STARTTLS.
type SMTPTransport struct {
	cfg     SMTPConfig
	timeout time.Duration
}

// NewSMTPTransport creates a transport for cfg. A zero timeout keeps the
// go-mail default.
func NewSMTPTransport(cfg SMTPConfig, timeout time.Duration) *SMTPTransport {
	return &SMTPTransport{cfg: cfg, timeout: timeout}
}

// Send connects, authenticates when a password is set, and sends msg
// unless dryRun.
func (t *SMTPTransport) Send(ctx context.Context, msg *gomail.Msg, dryRun bool) error {
	opts := []gomail.Option{
		gomail.WithPort(t.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if t.cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.cfg.User),
			gomail.WithPassword(t.cfg.Password),
		)
	}
	if t.timeout > 0 {
		opts = append(opts, gomail.WithTimeout(t.timeout))
	}

	client, err := gomail.NewClient(t.cfg.Server, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client for %s: %w", t.cfg.Server, err)
	}
	if !dryRun {
		if err := client.DialAndSendWithContext(ctx, msg); err != nil {
			return fmt.Errorf("sending via %s: %w", t.cfg.Server, err)
		}
		return nil
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("connecting to %s: %w", t.cfg.Server, err)
	}
	return client.Close()
}

// Options controls a send.
type Options struct {
	DryRun bool
	// Dump appends each message to the sent or failed dump file.
	Dump    bool
	DumpDir string
}

// Sender sends composed messages from the committee account.
type Sender struct {
	transport Transport
	cfg       SMTPConfig
	logger    zerolog.Logger
}

// NewSender creates a sender that uses cfg for the From and Bcc headers.
func NewSender(t Transport, cfg SMTPConfig, logger zerolog.Logger) *Sender {
	return &Sender{transport: t, cfg: cfg, logger: logger}
}

// Send sends m and reports whether it succeeded. Failures are logged and
// never returned, so a batch can continue with the next message.
func (s *Sender) Send(ctx context.Context, m Message, opts Options) bool {
	msg, err := m.MIME(&s.cfg)
	if err == nil {
		err = s.transport.Send(ctx, msg, opts.DryRun)
	}
	if err != nil {
		s.logger.Error().Err(err).Int("paper_id", m.PaperID).Str("to", m.To).Msg("send_mail failed")
		s.dump(opts, FailedDump, msg, m)
		return false
	}

	label := "send_mail"
	if opts.DryRun {
		label += " (dry_run)"
	}
	s.logger.Info().Int("paper_id", m.PaperID).
		Msgf("%s: %s -> %s: %s", label, s.cfg.From(), m.To, m.Subject)
	s.dump(opts, SentDump, msg, m)
	return true
}

// SendAll sends every message, continuing past failures, and returns the
// number sent and failed.
func (s *Sender) SendAll(ctx context.Context, msgs []Message, opts Options) (sent, failed int) {
	for _, m := range msgs {
		if ctx.Err() != nil {
			failed += len(msgs) - sent - failed
			s.logger.Warn().Err(ctx.Err()).Msg("send_mail cancelled")
			return sent, failed
		}
		if s.Send(ctx, m, opts) {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}

// dump appends the message to name in the dump directory. msg may be nil
// when the message could not be built; the plain rendering is used then.
func (s *Sender) dump(opts Options, name string, msg *gomail.Msg, m Message) {
	if !opts.Dump {
		return
	}
	dir := opts.DumpDir
	if dir == "" {
		dir = DefaultDumpDir
	}
	path := filepath.Join(dir, name)
	if err := appendMsg(path, msg, m); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("could not dump message")
	}
}

func appendMsg(path string, msg *gomail.Msg, m Message) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if msg != nil {
		_, err = msg.WriteTo(f)
	} else {
		_, err = io.WriteString(f, m.String())
	}
	if err == nil {
		_, err = io.WriteString(f, "\n")
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
