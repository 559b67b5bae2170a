package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ecogoals/ecogoals/internal/models"
	"github.com/ecogoals/ecogoals/internal/session"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email address."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	auth, err := ctx.Client.Login(context.Background(), models.LoginRequest{
		Email:    c.Email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess, err := session.Begin(ctx.Store, auth)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account email address."`
	Password string `help:"Account password. Prompted for when omitted."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}
	}

	auth, err := ctx.Client.Register(context.Background(), models.RegisterRequest{
		Name:     c.Name,
		Email:    c.Email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	sess, err := session.Begin(ctx.Store, auth)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s! You are now logged in.\n", sess.User.Name)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := session.End(ctx.Store); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct {
	Refresh bool `help:"Refetch the profile from the server."`
}

func (c *WhoamiCmd) Run(ctx *Context) error {
	sess, err := ctx.RequireAuth()
	if err != nil {
		return err
	}

	user := sess.User
	if c.Refresh || user.ID == "" {
		user, err = ctx.Client.Profile(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		if err := ctx.Store.SaveUser(user); err != nil {
			return err
		}
	}

	fmt.Printf("Name:  %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	return nil
}

func promptPassword(prompt string) (string, error) {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(prompt).
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password cannot be empty")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}
