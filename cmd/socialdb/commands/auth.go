package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialdb/pkg/identity"
	"socialdb/pkg/validation"
)

var password string

// register <username> <displayName>: create an account and log in.
func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username> <displayName>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, display := args[0], args[1]
			if err := validation.Username(username); err != nil {
				return err
			}
			if err := validation.Password(password); err != nil {
				return err
			}
			ok, err := identSvc.Register(username, display, password)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("username %q already exists", username)
			}
			fmt.Printf("registered and logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (stored nowhere, never checked)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// login <username>: set the session.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in as an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Password(password); err != nil {
				return err
			}
			ok, err := identSvc.Login(args[0], password)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("login failed")
			}
			fmt.Printf("logged in as %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (any value is accepted)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := identSvc.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser()
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\njoined %s\n", u.DisplayName, u.Username, u.JoinedAt.Format("2006-01-02"))
			if u.Bio != "" {
				fmt.Println(u.Bio)
			}
			return nil
		},
	}
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, u := range identSvc.Users() {
				fmt.Printf("%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName)
			}
			return nil
		},
	}
}

// profile set [--name] [--bio]: update the session user's profile.
func profileCmd() *cobra.Command {
	var name, bio string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update display name and/or bio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireUser(); err != nil {
				return err
			}
			var upd identity.ProfileUpdate
			if cmd.Flags().Changed("name") {
				upd.DisplayName = &name
			}
			if cmd.Flags().Changed("bio") {
				upd.Bio = &bio
			}
			if upd.DisplayName == nil && upd.Bio == nil {
				return fmt.Errorf("nothing to update; pass --name and/or --bio")
			}
			if err := identSvc.UpdateProfile(upd); err != nil {
				return err
			}
			fmt.Println("profile updated")
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "new display name")
	set.Flags().StringVar(&bio, "bio", "", "new bio")

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}
	cmd.AddCommand(set)
	return cmd
}
