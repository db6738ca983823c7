package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/marketpulse/internal/client/client"
	"github.com/dmitrijs2005/marketpulse/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, userName, password)
	if err := a.trackMode(err); err != nil {
		if errors.Is(err, client.ErrConflict) {
			return fmt.Errorf("username %q is already taken", userName)
		}
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d). You can login now.\n", user.Username, user.ID)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.trackMode(a.authService.Login(ctx, userName, password)); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("incorrect username or password")
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.authService.UserName())
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.authService.WhoAmI(ctx)
	if err := a.trackMode(err); err != nil {
		return sessionError(err)
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", user.Username, user.ID)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.trackMode(a.authService.Ping(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "pong")
	return nil
}

func sessionError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return errors.New("session expired, please login again")
	}
	return err
}
