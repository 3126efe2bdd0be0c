package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dkowalski/quoteshelf/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.authService.Register(ctx, email, name, password); err != nil {
		switch {
		case errors.Is(err, common.ErrConflict):
			log.Printf("Registration unsuccessful: email already registered")
		case errors.Is(err, common.ErrRateLimited):
			log.Printf("Registration unsuccessful: too many attempts, try again later")
		default:
			log.Printf("Registration unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Registration successful")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.authService.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Logged out")
	return nil
}

// Reset wipes everything stored locally: the session, the cached identity
// and any guest favorites. The server is not contacted.
func (a *App) Reset(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if err := a.store.Clear(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	log.Printf("Local data cleared")
	return nil
}
