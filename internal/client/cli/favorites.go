package cli

import (
	"context"
	"log"
)

func (a *App) Fav(ctx context.Context, arg string) error {
	id, err := parseIDArg(arg)
	if err != nil {
		printlnFn("Usage: fav <id>")
		return err
	}

	if err := a.favoriteService.Add(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Marked favorite")
	return nil
}

func (a *App) Unfav(ctx context.Context, arg string) error {
	id, err := parseIDArg(arg)
	if err != nil {
		printlnFn("Usage: unfav <id>")
		return err
	}

	if err := a.favoriteService.Remove(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Removed favorite")
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	posts, err := a.favoriteService.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(posts) == 0 {
		printlnFn("No favorites yet.")
		return nil
	}
	for _, p := range posts {
		printlnFn(formatPost(p))
	}
	return nil
}
