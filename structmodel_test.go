package tablefor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAuthor struct {
	ID        int    `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

func (a *testAuthor) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (testAuthor) ModelName() string { return "author" }

type testProfile struct {
	ID  int    `db:"id"`
	Bio string `db:"bio"`
}

func (testProfile) ModelName() string { return "profile" }

type Timestamps struct {
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type testPost struct {
	ID       int          `db:"id"`
	Title    string       `db:"title"`
	Body     string       `db:"body"           col:"Blah blue"`
	AuthorID int          `db:"author_id"`
	Author   *testAuthor  `db:"author"         assoc:"belongs_to"`
	Profile  *testProfile `db:"profile"        assoc:"has_one"`
	Secret   string       `db:"-"`
	Timestamps
}

func (testPost) ModelName() string { return "post" }

func (p testPost) Excerpt() (string, error) {
	if p.Body == "" {
		return "", errors.New("no body")
	}
	return p.Body[:1], nil
}

func TestStructModel(t *testing.T) {
	model, err := StructModelFor[testPost]()
	require.NoError(t, err)
	require.Equal(t, "post", model.Name())
	require.Equal(t, reflect.TypeFor[testPost](), model.StructType())
	require.Equal(t, SchemaColumns, model.Schema().Kind())
	require.Equal(t, []string{"id", "title", "body", "author_id", "created_at", "updated_at"}, model.Schema().Columns)

	belongsTo := model.Associations(BelongsTo)
	require.Len(t, belongsTo, 1)
	require.Equal(t, "author", belongsTo[0].Name)
	require.Equal(t, "author", belongsTo[0].TypeName)
	require.NotNil(t, belongsTo[0].Model)
	hasOne := model.Associations(HasOne)
	require.Len(t, hasOne, 1)
	require.Equal(t, "profile", hasOne[0].TypeName)

	heading, ok := model.HumanAttributeName("body")
	require.True(t, ok)
	require.Equal(t, "Blah blue", heading)
	_, ok = model.HumanAttributeName("title")
	require.False(t, ok)

	author := &testAuthor{ID: 7, FirstName: "Fred", LastName: "Smith"}
	post := testPost{ID: 2, Title: "Hello", Body: "World", Author: author, Timestamps: Timestamps{CreatedAt: "today"}}

	for name, want := range map[string]any{
		"title":      "Hello",
		"author":     author,
		"created_at": "today",
		"excerpt":    "W",
	} {
		got, err := model.Value(post, name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
	got, err := model.Value(&post, "title")
	require.NoError(t, err)
	require.Equal(t, "Hello", got, "pointer record")

	_, err = model.Value(post, "secret")
	require.Error(t, err, "ignored field")
	_, err = model.Value(testPost{}, "excerpt")
	require.Error(t, err, "method error")
	_, err = model.Value(testAuthor{}, "title")
	require.Error(t, err, "wrong record type")
	got, err = model.Value((*testPost)(nil), "title")
	require.NoError(t, err)
	require.Nil(t, got)

	id, ok := model.ID(post)
	require.True(t, ok)
	require.Equal(t, 2, id)

	authorModel := belongsTo[0].Model
	fullName, err := authorModel.Value(author, "full_name")
	require.NoError(t, err)
	require.Equal(t, "Fred Smith", fullName)
	fullName, err = authorModel.Value(*author, "full_name")
	require.NoError(t, err, "pointer receiver method of value record")
	require.Equal(t, "Fred Smith", fullName)
}

func TestStructModel_EmbeddedPointer(t *testing.T) {
	type withPtr struct {
		ID int `db:"id"`
		*Timestamps
	}
	model, err := StructModelFor[withPtr]()
	require.NoError(t, err)
	require.Equal(t, "with_ptr", model.Name())
	require.Equal(t, []string{"id", "created_at", "updated_at"}, model.Schema().Columns)

	got, err := model.Value(withPtr{ID: 1}, "created_at")
	require.NoError(t, err)
	require.Nil(t, got, "nil embedded pointer")
}

func TestStructModelOf_Errors(t *testing.T) {
	_, err := StructModelOf(nil)
	require.Error(t, err)
	_, err = StructModelOf(reflect.TypeFor[int]())
	require.Error(t, err)

	type broken struct {
		Things []string `assoc:"has_many"`
	}
	_, err = StructModelFor[broken]()
	require.Error(t, err)

	type noID struct{ Name string }
	model, err := StructModelFor[noID]()
	require.NoError(t, err)
	_, ok := model.ID(noID{Name: "x"})
	require.False(t, ok)
}

func TestCollectionOf(t *testing.T) {
	posts := []testPost{{ID: 1}, {ID: 2}}

	c, err := CollectionOf(posts)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Equal(t, "post", c.Model().Name())
	require.Equal(t, posts[1], c.Record(1))

	c, err = CollectionOf(&[1]*testPost{{ID: 3}})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	require.Equal(t, "post", c.Model().Name())

	c, err = CollectionOf([]any{testPost{ID: 1}, testPost{ID: 2}})
	require.NoError(t, err)
	require.Equal(t, "post", c.Model().Name())

	c, err = CollectionOf([]any{})
	require.NoError(t, err)
	require.Zero(t, c.Len())
	require.Nil(t, c.Model())

	_, err = CollectionOf([]any{testPost{ID: 1}, testAuthor{ID: 2}})
	require.ErrorIs(t, err, ErrMixedRecordTypes)

	_, err = CollectionOf(testPost{})
	require.Error(t, err)

	records := NewRecords(NewMapModel("tag", Schema{Columns: []string{"name"}}))
	c, err = CollectionOf(records)
	require.NoError(t, err)
	require.Same(t, records, c)
}
