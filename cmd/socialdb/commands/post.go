package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialdb/pkg/content"
	"socialdb/pkg/models"
	"socialdb/pkg/validation"
)

func postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create and manage posts",
	}
	cmd.AddCommand(
		postCreateCmd(), postDeleteCmd(),
		postLikeCmd(), postUnlikeCmd(),
		postCommentCmd(), postUncommentCmd(),
	)
	return cmd
}

func postCreateCmd() *cobra.Command {
	var image string
	cmd := &cobra.Command{
		Use:   "create <text>",
		Short: "Publish a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			if err := validation.Content(args[0]); err != nil {
				return err
			}
			p, err := postsSvc.CreatePost(u.ID, args[0], image)
			if err != nil {
				return err
			}
			fmt.Printf("posted %s\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "image URL to attach")
	return cmd
}

// post delete: author-only. The store itself has no ownership check;
// this command is where the restriction lives.
func postDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <postID>",
		Short: "Delete your own post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			id := models.PostID(args[0])
			p, ok := postsSvc.GetPost(id)
			if !ok {
				return fmt.Errorf("post %s not found", id)
			}
			if p.AuthorID != u.ID {
				return fmt.Errorf("only the author can delete a post")
			}
			if err := postsSvc.DeletePost(id); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func postLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <postID>",
		Short: "Like a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			return postsSvc.LikePost(models.PostID(args[0]), u.ID)
		},
	}
}

func postUnlikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlike <postID>",
		Short: "Remove your like from a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			return postsSvc.UnlikePost(models.PostID(args[0]), u.ID)
		},
	}
}

func postCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <postID> <text>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			if err := validation.Content(args[1]); err != nil {
				return err
			}
			c, err := postsSvc.AddComment(models.PostID(args[0]), u.ID, args[1])
			if err != nil {
				return err
			}
			if c.ID == "" {
				return fmt.Errorf("post %s not found", args[0])
			}
			fmt.Printf("commented %s\n", c.ID)
			return nil
		},
	}
}

// post uncomment: comment-author-only, same caller-side rule as delete.
func postUncommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomment <postID> <commentID>",
		Short: "Delete your own comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			postID := models.PostID(args[0])
			commentID := models.CommentID(args[1])
			p, ok := postsSvc.GetPost(postID)
			if !ok {
				return fmt.Errorf("post %s not found", postID)
			}
			for _, c := range p.Comments {
				if c.ID == commentID && c.AuthorID != u.ID {
					return fmt.Errorf("only the author can delete a comment")
				}
			}
			return postsSvc.DeleteComment(postID, commentID)
		},
	}
}

// feed prints all posts newest first, with comments newest first under
// each post, matching the display contract of the data layer.
func feedCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []models.Post
			if user != "" {
				posts = postsSvc.PostsByUser(models.UserID(user))
			} else {
				posts = postsSvc.FeedPosts()
			}
			for _, p := range posts {
				fmt.Printf("%s  %s  %s\n", p.ID, displayName(p.AuthorID), p.CreatedAt.Local().Format("2006-01-02 15:04"))
				fmt.Printf("  %s\n", p.Content)
				if p.Image != "" {
					fmt.Printf("  image: %s\n", p.Image)
				}
				fmt.Printf("  likes: %d  comments: %d\n", len(p.Likes), len(p.Comments))
				for _, c := range content.CommentsNewestFirst(p) {
					fmt.Printf("    %s  %s: %s\n", c.ID, displayName(c.AuthorID), c.Content)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "only posts by this user id")
	return cmd
}
