package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecogoals/ecogoals/internal/models"
)

type ProfileCmd struct {
	Name      *string `help:"Change the display name."`
	Email     *string `help:"Change the account email address."`
	AvatarURL *string `name:"avatar-url" help:"Change the avatar image URL."`
	Password  bool    `help:"Change the account password (prompted)."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	sess, err := ctx.RequireAuth()
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{
		Name:      c.Name,
		Email:     c.Email,
		AvatarURL: c.AvatarURL,
	}
	if c.Password {
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirmed, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirmed {
			return errors.New("passwords do not match")
		}
		update.Password = &password
	}

	if update.Name == nil && update.Email == nil && update.AvatarURL == nil && update.Password == nil {
		user := sess.User
		fmt.Printf("Name:   %s\n", user.Name)
		fmt.Printf("Email:  %s\n", user.Email)
		if user.AvatarURL != "" {
			fmt.Printf("Avatar: %s\n", user.AvatarURL)
		}
		fmt.Println("\nPass --name, --email, --avatar-url, or --password to update.")
		return nil
	}

	user, err := ctx.Client.UpdateProfile(context.Background(), update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if err := ctx.Store.SaveUser(user); err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
