// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sympo-pubtools/internal/mail"
	"github.com/pdiddy/sympo-pubtools/internal/program"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Compose and send revision-request emails",
	Long: `Mail fills the subject and body templates for every revision request
and saves or sends the messages. The body template may use {name},
{title} and {errors}; the subject may use {id}.

SMTP settings come from SMTP_SERVER, SMTP_PORT, SMTP_USER, SMTP_USERNAME
and the optional SMTP_PASSWORD, read from the environment, a .env file,
or the secrets directory (smtp-password and so on).`,
}

var mailComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write the composed emails to a directory for review",
	RunE:  runMailCompose,
}

func runMailCompose(cmd *cobra.Command, args []string) error {
	msgs, err := composeMessages(cmd)
	if err != nil {
		return err
	}

	var from *mail.SMTPConfig
	if cfg, err := mail.LoadSMTPConfig(viper.GetViper(), loadedSecrets); err == nil {
		from = &cfg
	} else {
		logger.Warn().Err(err).Msg("saving without From header")
	}

	dir, _ := cmd.Flags().GetString("dir")
	paths, err := mail.Save(msgs, dir, from)
	if err != nil {
		return err
	}
	logger.Info().Int("messages", len(paths)).Str("dir", dir).Msg("saved emails")
	return nil
}

var mailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the composed emails",
	Long: `Send delivers every message over SMTP with STARTTLS. With --dry-run it
connects and authenticates but sends nothing. Each message is appended to
email.dump or failed_email.dump in the dump directory. A failed message
does not stop the batch.`,
	RunE: runMailSend,
}

func runMailSend(cmd *cobra.Command, args []string) error {
	cfg, err := mail.LoadSMTPConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	msgs, err := composeMessages(cmd)
	if err != nil {
		return err
	}

	mc := mailConfig()
	opts := mail.Options{DryRun: mc.DryRun, Dump: mc.Dump, DumpDir: mc.DumpDir}
	transport := mail.NewSMTPTransport(cfg, mc.Timeout)
	sender := mail.NewSender(transport, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sent, failed := sender.SendAll(ctx, msgs, opts)
	fmt.Fprintf(cmd.OutOrStdout(), "\nBatch summary: %d sent, %d failed (total: %d)\n", sent, failed, len(msgs))
	if failed > 0 {
		return fmt.Errorf("%d message(s) failed", failed)
	}
	return nil
}

func composeMessages(cmd *cobra.Command) ([]mail.Message, error) {
	itemsPath, _ := cmd.Flags().GetString("items")
	subject, _ := cmd.Flags().GetString("subject")
	tmplPath, _ := cmd.Flags().GetString("template")

	items, err := program.LoadReviseItems(itemsPath)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}
	return mail.Compose(items, subject, string(body))
}

func init() {
	mailCmd.PersistentFlags().String("items", "revise.json", "revision request file")
	mailCmd.PersistentFlags().String("subject", "Revision request for paper {id}", "subject template")
	mailCmd.PersistentFlags().String("template", "email_template.txt", "body template file")

	mailComposeCmd.Flags().String("dir", "emails", "output directory for <paper id>.txt files")

	mailSendCmd.Flags().Bool("dry-run", true, "connect and authenticate without sending")
	mailSendCmd.Flags().Bool("dump", true, "append messages to the dump files")
	mailSendCmd.Flags().String("dump-dir", mail.DefaultDumpDir, "directory of email.dump and failed_email.dump")
	mailSendCmd.Flags().Duration("timeout", 0, "timeout of one SMTP exchange (default: go-mail default)")
	bindFlags(mailSendCmd, "mail", "dry-run", "dump", "dump-dir", "timeout")

	mailCmd.AddCommand(mailComposeCmd)
	mailCmd.AddCommand(mailSendCmd)

	rootCmd.AddCommand(mailCmd)
}
