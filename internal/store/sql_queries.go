package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/book-collections/models"
)

const (
	booksTable = "books"
	usersTable = "users"
)

var (
	bookColumns = []string{"id", "title", "description", "published_at", "book", "created_at", "updated_at"}
	userColumns = []string{"id", "identity", "secret_hash", "created_at"}
)

// filterColumns maps filterable fields to their column.
var filterColumns = map[string]string{
	"id":                    "id",
	models.FieldTitle:       "title",
	models.FieldDescription: "description",
	models.FieldBook:        "book",
}

// criterionRenderer turns the non-exact predicates into dialect SQL.
type criterionRenderer interface {
	containsFold(column, value string) sq.Sqlizer
	hasAll(column string, values []string) (sq.Sqlizer, error)
}

// postgresCriteria relies on the ~* operator and jsonb containment.
type postgresCriteria struct{}

func (postgresCriteria) containsFold(column, value string) sq.Sqlizer {
	return sq.Expr(column+" ~* ?", regexp.QuoteMeta(value))
}

func (postgresCriteria) hasAll(column string, values []string) (sq.Sqlizer, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return sq.Expr(column+" @> CAST(? AS jsonb)", string(raw)), nil
}

// sqliteCriteria relies on the contains_fold connection function and
// json_each. The value is passed as a plain substring, never a pattern.
type sqliteCriteria struct{}

func (sqliteCriteria) containsFold(column, value string) sq.Sqlizer {
	return sq.Expr("contains_fold("+column+", ?)", value)
}

func (sqliteCriteria) hasAll(column string, values []string) (sq.Sqlizer, error) {
	conditions := make(sq.And, 0, len(values))
	for _, v := range values {
		conditions = append(conditions,
			sq.Expr("EXISTS (SELECT 1 FROM json_each("+booksTable+"."+column+") WHERE json_each.value = ?)", v))
	}
	return conditions, nil
}

// whereFilters renders a FilterSet as a conjunction. Criteria are emitted in
// field name order so the statement is stable.
func whereFilters(d dialect, filters models.FilterSet) (sq.And, error) {
	where := make(sq.And, 0, len(filters))
	for _, field := range slices.Sorted(maps.Keys(filters)) {
		c := filters[field]
		column, ok := filterColumns[c.Field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrUnsupportedFilter, c.Field)
		}

		switch c.Predicate {
		case models.Exact:
			v, ok := c.Value.(string)
			if !ok || column == "book" {
				return nil, fmt.Errorf("%w: exact match on %q", ErrUnsupportedFilter, c.Field)
			}
			where = append(where, sq.Eq{column: v})
		case models.RegexCaseInsensitive:
			v, ok := c.Value.(string)
			if !ok || column == "book" {
				return nil, fmt.Errorf("%w: pattern match on %q", ErrUnsupportedFilter, c.Field)
			}
			where = append(where, d.matchers.containsFold(column, v))
		case models.Membership:
			values, ok := c.Value.([]string)
			if !ok || column != "book" {
				return nil, fmt.Errorf("%w: membership on %q", ErrUnsupportedFilter, c.Field)
			}
			cond, err := d.matchers.hasAll(column, values)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnsupportedFilter, err)
			}
			where = append(where, cond)
		default:
			return nil, fmt.Errorf("%w: predicate %s", ErrUnsupportedFilter, c.Predicate)
		}
	}

	return where, nil
}

func buildFindBooksQuery(b sq.StatementBuilderType, d dialect, filters models.FilterSet) (string, []any, error) {
	where, err := whereFilters(d, filters)
	if err != nil {
		return "", nil, err
	}

	query := b.Select(bookColumns...).From(booksTable)
	if len(where) > 0 {
		query = query.Where(where)
	}

	return query.OrderBy("created_at", "id").ToSql()
}

func buildInsertBookQuery(b sq.StatementBuilderType, book models.Book) (string, []any, error) {
	titles, err := encodeTitles(book.Book)
	if err != nil {
		return "", nil, err
	}

	return b.Insert(booksTable).
		Columns(bookColumns...).
		Values(book.ID, book.Title, book.Description, book.PublishedAt, titles, book.CreatedAt, book.UpdatedAt).
		ToSql()
}

func buildSelectBookContentQuery(b sq.StatementBuilderType, d dialect, id string) (string, []any, error) {
	query := b.Select("title", "description", "published_at", "book").
		From(booksTable).
		Where(sq.Eq{"id": id})
	if d.lockSuffix != "" {
		query = query.Suffix(d.lockSuffix)
	}

	return query.ToSql()
}

func buildUpdateBookQuery(b sq.StatementBuilderType, id string, book models.Book) (string, []any, error) {
	titles, err := encodeTitles(book.Book)
	if err != nil {
		return "", nil, err
	}

	return b.Update(booksTable).
		Set("title", book.Title).
		Set("description", book.Description).
		Set("published_at", book.PublishedAt).
		Set("book", titles).
		Set("updated_at", book.UpdatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteBookQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(booksTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Identity, user.SecretHash, user.CreatedAt).
		ToSql()
}

func buildFindUserByIdentityQuery(b sq.StatementBuilderType, identity string) (string, []any, error) {
	return b.Select(userColumns...).From(usersTable).Where(sq.Eq{"identity": identity}).ToSql()
}

// encodeTitles serializes the collection titles for the book column.
func encodeTitles(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	raw, err := json.Marshal(titles)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeTitles(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, nil
	}
	return titles, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var (
		book models.Book
		raw  []byte
	)
	if err := row.Scan(&book.ID, &book.Title, &book.Description, &book.PublishedAt, &raw, &book.CreatedAt, &book.UpdatedAt); err != nil {
		return models.Book{}, err
	}

	titles, err := decodeTitles(raw)
	if err != nil {
		return models.Book{}, err
	}
	book.Book = titles
	book.PublishedAt = book.PublishedAt.UTC()
	book.CreatedAt = book.CreatedAt.UTC()
	book.UpdatedAt = book.UpdatedAt.UTC()

	return book, nil
}

func scanBookContent(row rowScanner) (models.Book, error) {
	var (
		book models.Book
		raw  []byte
	)
	if err := row.Scan(&book.Title, &book.Description, &book.PublishedAt, &raw); err != nil {
		return models.Book{}, err
	}

	titles, err := decodeTitles(raw)
	if err != nil {
		return models.Book{}, err
	}
	book.Book = titles
	book.PublishedAt = book.PublishedAt.UTC()

	return book, nil
}

// truncateTime drops precision neither backend keeps, so a stored value
// compares equal to the one that was written.
func truncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
