package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the career coach",
	Long:  "Sends one message when given as an argument, or starts an interactive conversation otherwise. The conversation log persists across invocations; failures surface as coach messages, so the conversation never dead-ends.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChat,
}

var chatConfigPath string

func init() {
	chatCmd.Flags().StringVar(&chatConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(chatConfigPath)
	if err != nil {
		return err
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	client := newCompleter(ctx, cfg)
	defer func() { _ = client.Close() }()

	sess := session.New(client, state)

	if len(args) == 1 {
		return sendOne(ctx, sess, args[0])
	}
	return chatLoop(ctx, sess)
}

func sendOne(ctx context.Context, sess *session.Session, text string) error {
	reply, err := sess.Send(ctx, text)
	if err != nil {
		if errors.Is(err, session.ErrNoProfile) {
			return fmt.Errorf("no profile found: run 'coach_agent onboard' first")
		}
		return err
	}
	fmt.Printf("coach> %s\n", reply.Content)
	return nil
}

func chatLoop(ctx context.Context, sess *session.Session) error {
	fmt.Println("Career coach. Type a message, or /quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" || text == "/exit" {
			break
		}

		if err := sendOne(ctx, sess, text); err != nil {
			return err
		}
	}
	return scanner.Err()
}
