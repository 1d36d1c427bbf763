package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bnema/gigpulse/internal/adapters/render/dashboard"
	"github.com/bnema/gigpulse/internal/application"
	"github.com/bnema/gigpulse/internal/domain"
)

const replySpinnerLabel = "Guardian is thinking..."

func newChatCmd(app *app) *cobra.Command {
	var (
		userID string
		once   string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the Guardian assistant",
		Long:  "Open a Guardian session. Lines read from stdin are sent as messages; /login <id>, /logout and /quit control the session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			broker, err := app.newBroker(ctx)
			if err != nil {
				return err
			}
			defer broker.Close()

			if userID != "" {
				app.session.Login(domain.UserID(userID))
			}

			out := newTranscript(cmd.OutOrStdout())
			waitReply := func(ctx context.Context) error {
				return runReplySpinner(ctx, cmd.ErrOrStderr(), replySpinnerLabel, func(context.Context) error {
					broker.Wait()
					return nil
				})
			}

			if err := waitReply(ctx); err != nil {
				return err
			}
			out.flush(broker.Messages())

			if once != "" {
				return sendAndPrint(ctx, broker, out, waitReply, once)
			}

			return chatLoop(ctx, app, broker, cmd.InOrStdin(), out, waitReply)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Sign in as this marketplace user")
	cmd.Flags().StringVar(&once, "once", "", "Send one message, print the reply and exit")

	return cmd
}

func chatLoop(ctx context.Context, app *app, broker *application.Broker, in io.Reader, out *transcript, waitReply func(context.Context) error) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/logout":
			app.session.Logout()
			out.note("signed out")
			continue
		case strings.HasPrefix(line, "/login "):
			user := strings.TrimSpace(strings.TrimPrefix(line, "/login "))
			app.session.Login(domain.UserID(user))
			out.note("signed in as " + user)
			continue
		}

		if err := sendAndPrint(ctx, broker, out, waitReply, line); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func sendAndPrint(ctx context.Context, broker *application.Broker, out *transcript, waitReply func(context.Context) error, text string) error {
	if err := broker.SendMessage(ctx, text); err != nil {
		return err
	}
	if err := waitReply(ctx); err != nil {
		return err
	}
	out.flush(broker.Messages())
	return nil
}

// transcript prints each broker message once, in log order.
type transcript struct {
	mu      sync.Mutex
	w       io.Writer
	printed int
}

func newTranscript(w io.Writer) *transcript {
	return &transcript{w: w}
}

func (t *transcript) flush(messages []domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, message := range messages[min(t.printed, len(messages)):] {
		_, _ = fmt.Fprintln(t.w, dashboard.FormatMessage(message))
	}
	t.printed = max(t.printed, len(messages))
}

func (t *transcript) note(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, "-- %s\n", text)
}
