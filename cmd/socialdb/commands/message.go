package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialdb/pkg/models"
	"socialdb/pkg/validation"
)

func msgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Direct messages",
	}
	cmd.AddCommand(msgSendCmd(), msgListCmd(), msgShowCmd(), msgDeleteCmd())
	return cmd
}

func msgSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <userID> <text>",
		Short: "Send a direct message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			if err := validation.Content(args[1]); err != nil {
				return err
			}
			receiver := models.UserID(args[0])
			if _, ok := identSvc.GetUserByID(receiver); !ok {
				return fmt.Errorf("user %s not found", receiver)
			}
			m, err := msgSvc.SendMessage(u.ID, receiver, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("sent %s\n", m.ID)
			return nil
		},
	}
}

// msg list shows the conversation overview, most recent first.
func msgListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			for _, c := range msgSvc.Conversations(u.ID) {
				last := ""
				if c.LastMessage != nil {
					last = c.LastMessage.Content
				}
				unread := ""
				if c.UnreadCount > 0 {
					unread = fmt.Sprintf(" (%d unread)", c.UnreadCount)
				}
				fmt.Printf("%s  %s%s: %s\n", c.CounterpartID, displayName(c.CounterpartID), unread, last)
			}
			return nil
		},
	}
}

// msg show prints the transcript oldest first and marks the
// counterpart's messages to you as read, like opening the chat.
func msgShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <userID>",
		Short: "Show a conversation and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			other := models.UserID(args[0])
			for _, m := range msgSvc.Conversation(u.ID, other) {
				fmt.Printf("%s  %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), displayName(m.SenderID), m.Content)
			}
			return msgSvc.MarkAsRead(other, u.ID)
		},
	}
}

func msgDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <messageID>",
		Short: "Delete one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireUser(); err != nil {
				return err
			}
			return msgSvc.DeleteMessage(models.MessageID(args[0]))
		},
	}
}
