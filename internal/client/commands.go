package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/book-collections/models"
)

var ErrMissingFlag = errors.New("missing required flag")

func (a *App) credentials(fs *flag.FlagSet, args []string) (models.Credentials, error) {
	identity := fs.String("identity", "", "e-mail address")
	secret := fs.String("secret", "", "password; prompted when omitted")
	if err := fs.Parse(args); err != nil {
		return models.Credentials{}, err
	}

	if strings.TrimSpace(*identity) == "" {
		return models.Credentials{}, fmt.Errorf("%w: -identity", ErrMissingFlag)
	}

	if *secret == "" {
		s, err := promptSecret(a.err, a.in)
		if err != nil {
			return models.Credentials{}, err
		}
		*secret = s
	}

	return models.Credentials{Identity: *identity, Secret: *secret}, nil
}

func (a *App) register(ctx context.Context, args []string) error {
	creds, err := a.credentials(a.flagSet("register"), args)
	if err != nil {
		return err
	}

	registered, err := a.adapter.Register(ctx, creds)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return a.printJSON(registered)
}

func (a *App) login(ctx context.Context, args []string) error {
	creds, err := a.credentials(a.flagSet("login"), args)
	if err != nil {
		return err
	}

	token, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return a.printJSON(models.LoginResponse{AccessToken: token})
}

func (a *App) profile(ctx context.Context, args []string) error {
	if err := a.flagSet("profile").Parse(args); err != nil {
		return err
	}

	claims, err := a.adapter.Profile(ctx)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	return a.printJSON(models.ProfileResponse{Claims: claims})
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := a.flagSet("logout").Parse(args); err != nil {
		return err
	}

	if err := a.adapter.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	fmt.Fprintln(a.err, "logged out")
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	title := fs.String("title", "", "exact title")
	description := fs.String("description", "", "description substring, case-insensitive")
	book := fs.String("book", "", "book list member")
	bookTitle := fs.String("booktitle", "", "book list member, ignored when -book is set")
	raw := fs.String("query", "", "raw query string appended to the filters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := url.Values{}
	if *raw != "" {
		parsed, err := url.ParseQuery(*raw)
		if err != nil {
			return fmt.Errorf("parse -query: %w", err)
		}
		filters = parsed
	}
	for key, value := range map[string]string{
		models.FieldTitle:       *title,
		models.FieldDescription: *description,
		models.FieldBook:        *book,
		"booktitle":             *bookTitle,
	} {
		if value != "" {
			filters.Add(key, value)
		}
	}

	books, err := a.adapter.ListBooks(ctx, filters)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	return a.printJSON(models.ListBooksResponse{Collections: books})
}

// bookFlags registers the payload flags on fs and returns a builder that
// must be called after fs.Parse.
func bookFlags(fs *flag.FlagSet) func() (models.BookPayload, error) {
	title := fs.String("title", "", "collection title")
	description := fs.String("description", "", "collection description")
	publishedAt := fs.String("published-at", "", "publication time, RFC 3339 or YYYY-MM-DD")
	var books stringList
	fs.Var(&books, "book", "book in the collection; repeatable")

	return func() (models.BookPayload, error) {
		if *title == "" {
			return models.BookPayload{}, fmt.Errorf("%w: -title", ErrMissingFlag)
		}
		if *description == "" {
			return models.BookPayload{}, fmt.Errorf("%w: -description", ErrMissingFlag)
		}

		payload := models.BookPayload{Title: *title, Description: *description, Book: books}
		if *publishedAt != "" {
			t, err := parseTime(*publishedAt)
			if err != nil {
				return models.BookPayload{}, err
			}
			payload.PublishedAt = &t
		}
		return payload, nil
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -published-at %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	build := bookFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload, err := build()
	if err != nil {
		return err
	}

	book, err := a.adapter.CreateBook(ctx, payload)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	return a.printJSON(models.BookResponse{Collection: book})
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	id := fs.String("id", "", "collection id")
	build := bookFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}
	payload, err := build()
	if err != nil {
		return err
	}

	result, err := a.adapter.UpdateBook(ctx, *id, payload)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return a.printJSON(result)
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.String("id", "", "collection id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	result, err := a.adapter.DeleteBook(ctx, *id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return a.printJSON(result)
}

func (a *App) version(ctx context.Context, args []string) error {
	if err := a.flagSet("version").Parse(args); err != nil {
		return err
	}

	v, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	fmt.Fprintln(a.out, v)
	return nil
}
