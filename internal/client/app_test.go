package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/book-collections/internal/adapter"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/mock"
	"github.com/MKhiriev/book-collections/models"
)

type testApp struct {
	*App
	adapter *mock.MockServerAdapter
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	return testApp{
		App:     NewApp(m, strings.NewReader(stdin), out, errOut, logger.Nop()),
		adapter: m,
		out:     out,
		errOut:  errOut,
	}
}

func TestRun_NoCommand(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCommand)
	assert.Contains(t, app.errOut.String(), "Commands:")
}

func TestRun_UnknownCommand(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), []string{"borrow"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_TokenFlag(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().SetToken("tok")
	app.adapter.EXPECT().Profile(ctx).Return(models.Claims{SubjectID: "u1"}, nil)

	require.NoError(t, app.Run(ctx, []string{"-token", "tok", "profile"}))

	var got models.ProfileResponse
	require.NoError(t, json.Unmarshal(app.out.Bytes(), &got))
	assert.Equal(t, "u1", got.Claims.SubjectID)
}

func TestRegister_SecretFlag(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	creds := models.Credentials{Identity: "reader@example.com", Secret: "pw"}

	app.adapter.EXPECT().Register(ctx, creds).Return(models.RegisterResponse{ID: "u1", Identity: creds.Identity}, nil)

	require.NoError(t, app.Run(ctx, []string{"register", "-identity", creds.Identity, "-secret", "pw"}))
	assert.Contains(t, app.out.String(), `"id": "u1"`)
}

func TestRegister_PromptsForSecret(t *testing.T) {
	app := newTestApp(t, "typed-secret\n")
	ctx := context.Background()

	app.adapter.EXPECT().
		Register(ctx, models.Credentials{Identity: "reader@example.com", Secret: "typed-secret"}).
		Return(models.RegisterResponse{ID: "u1"}, nil)

	require.NoError(t, app.Run(ctx, []string{"register", "-identity", "reader@example.com"}))
	assert.Contains(t, app.errOut.String(), "Enter password")
}

func TestRegister_MissingIdentity(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), []string{"register", "-secret", "pw"})
	assert.ErrorIs(t, err, ErrMissingFlag)
}

func TestLogin_PrintsToken(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().Login(ctx, gomock.Any()).Return("signed", nil)

	require.NoError(t, app.Run(ctx, []string{"login", "-identity", "reader@example.com", "-secret", "pw"}))

	var got models.LoginResponse
	require.NoError(t, json.Unmarshal(app.out.Bytes(), &got))
	assert.Equal(t, "signed", got.AccessToken)
}

func TestLogin_Error(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().Login(ctx, gomock.Any()).Return("", adapter.ErrUnauthorized)

	err := app.Run(ctx, []string{"login", "-identity", "reader@example.com", "-secret", "bad"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Empty(t, app.out.String())
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().Logout(ctx).Return(nil)

	require.NoError(t, app.Run(ctx, []string{"logout"}))
	assert.Contains(t, app.errOut.String(), "logged out")
}

func TestList_BuildsFilters(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	want := url.Values{
		"title":       {"Dune"},
		"description": {"sand"},
		"extra":       {"1"},
	}
	app.adapter.EXPECT().ListBooks(ctx, want).Return([]models.Book{{ID: "b1"}}, nil)

	require.NoError(t, app.Run(ctx, []string{"list", "-title", "Dune", "-description", "sand", "-query", "extra=1"}))

	var got models.ListBooksResponse
	require.NoError(t, json.Unmarshal(app.out.Bytes(), &got))
	require.Len(t, got.Collections, 1)
	assert.Equal(t, "b1", got.Collections[0].ID)
}

func TestList_InvalidRawQuery(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), []string{"list", "-query", "%zz"})
	assert.Error(t, err)
}

func TestAdd(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	published := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)

	app.adapter.EXPECT().
		CreateBook(ctx, models.BookPayload{
			Title:       "Dune",
			Description: "sand",
			PublishedAt: &published,
			Book:        []string{"Dune", "Dune Messiah"},
		}).
		Return(models.Book{ID: "b1", Title: "Dune"}, nil)

	require.NoError(t, app.Run(ctx, []string{
		"add", "-title", "Dune", "-description", "sand",
		"-published-at", "1965-08-01", "-book", "Dune", "-book", "Dune Messiah",
	}))
	assert.Contains(t, app.out.String(), `"collection"`)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing title", args: []string{"add", "-description", "sand"}},
		{name: "missing description", args: []string{"add", "-title", "Dune"}},
		{name: "bad date", args: []string{"add", "-title", "Dune", "-description", "sand", "-published-at", "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, "")
			assert.Error(t, app.Run(context.Background(), tt.args))
		})
	}
}

func TestUpdate(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().
		UpdateBook(ctx, "b1", models.BookPayload{Title: "Dune", Description: "sand"}).
		Return(models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	require.NoError(t, app.Run(ctx, []string{"update", "-id", "b1", "-title", "Dune", "-description", "sand"}))
	assert.Contains(t, app.out.String(), `"modifiedCount": 1`)
}

func TestUpdate_MissingID(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), []string{"update", "-title", "Dune", "-description", "sand"})
	assert.ErrorIs(t, err, ErrMissingFlag)
}

func TestDelete(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().DeleteBook(ctx, "b1").Return(models.DeleteResult{DeletedCount: 0}, nil)

	require.NoError(t, app.Run(ctx, []string{"delete", "-id", "b1"}))
	assert.Contains(t, app.out.String(), `"deletedCount": 0`)
}

func TestDelete_ServerError(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().DeleteBook(ctx, "b1").Return(models.DeleteResult{}, errors.New("boom"))

	err := app.Run(ctx, []string{"delete", "-id", "b1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete: boom")
}

func TestVersion(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.adapter.EXPECT().Version(ctx).Return("1.0.0", nil)

	require.NoError(t, app.Run(ctx, []string{"version"}))
	assert.Equal(t, "1.0.0\n", app.out.String())
}
