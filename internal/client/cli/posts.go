package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dkowalski/quoteshelf/internal/client/api"
)

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("expected a numeric post id, got %q", arg)
	}
	return id, nil
}

func formatPost(p api.Post) string {
	line := fmt.Sprintf("#%d %q — %s", p.ID, p.Content, p.Author)
	if p.Source != nil {
		line += fmt.Sprintf(" (%s)", *p.Source)
	}
	if p.Private {
		line += " [private]"
	}
	return line
}

func (a *App) List(ctx context.Context) error {
	posts, err := a.postService.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(posts) == 0 {
		printlnFn("No quotes yet.")
		return nil
	}
	for _, p := range posts {
		printlnFn(formatPost(p))
	}
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	id, err := parseIDArg(arg)
	if err != nil {
		printlnFn("Usage: show <id>")
		return err
	}

	post, err := a.postService.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(formatPost(*post))
	return nil
}

// readPostInput collects the writable fields of a quote interactively.
func (a *App) readPostInput() (api.PostInput, error) {
	content, err := GetSimpleText(a.reader, "Enter quote text", os.Stdout)
	if err != nil {
		return api.PostInput{}, err
	}

	author, err := GetSimpleText(a.reader, "Enter author", os.Stdout)
	if err != nil {
		return api.PostInput{}, err
	}

	source, err := GetSimpleText(a.reader, "Enter source (empty for none)", os.Stdout)
	if err != nil {
		return api.PostInput{}, err
	}

	private, err := GetSimpleText(a.reader, "Private? (y/N)", os.Stdout)
	if err != nil {
		return api.PostInput{}, err
	}

	in := api.PostInput{
		Content: content,
		Author:  author,
		Private: strings.EqualFold(private, "y"),
	}
	if source != "" {
		in.Source = &source
	}
	return in, nil
}

func (a *App) Add(ctx context.Context) error {
	in, err := a.readPostInput()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	post, err := a.postService.Create(ctx, in)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Added", formatPost(*post))
	return nil
}

func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := parseIDArg(arg)
	if err != nil {
		printlnFn("Usage: edit <id>")
		return err
	}

	in, err := a.readPostInput()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	post, err := a.postService.Update(ctx, id, in)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Updated", formatPost(*post))
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := parseIDArg(arg)
	if err != nil {
		printlnFn("Usage: delete <id>")
		return err
	}

	if err := a.postService.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Deleted")
	return nil
}

func (a *App) Filters(ctx context.Context) error {
	filters, err := a.postService.Filters(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Authors:")
	for _, f := range filters.Authors {
		printlnFn(fmt.Sprintf("  %s (%d)", f.Name, f.Count))
	}
	printlnFn("Sources:")
	for _, f := range filters.Sources {
		printlnFn(fmt.Sprintf("  %s (%d)", f.Name, f.Count))
	}
	return nil
}
