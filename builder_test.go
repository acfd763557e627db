package tablefor

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testPosts() []testPost {
	fred := &testAuthor{ID: 7, FirstName: "Fred", LastName: "Smith"}
	return []testPost{
		{ID: 1, Title: "Hello", Body: "World", AuthorID: 7, Author: fred},
		{ID: 2, Title: "Second", Body: "Post", Profile: &testProfile{ID: 3, Bio: "bio"}},
	}
}

func buildTable(t *testing.T, collection any, config *Config, block BlockFunc) *Table {
	t.Helper()
	if config == nil {
		config = DefaultConfig()
	}
	table, err := Build(context.Background(), collection, config.WithLogger(zaptest.NewLogger(t)), block)
	require.NoError(t, err)
	return table
}

func headings(table *Table) []string {
	var h []string
	for _, cell := range table.Head {
		h = append(h, string(cell.Content))
	}
	return h
}

func contents(cells []TableCell) []string {
	var c []string
	for _, cell := range cells {
		c = append(c, string(cell.Content))
	}
	return c
}

func TestBuild_AutomaticColumns(t *testing.T) {
	table := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data()
	})
	require.Equal(t, Attrs{"id": "posts"}, table.Attrs)
	require.Equal(t, []string{"Title", "Blah blue", "Author", "Profile"}, headings(table))
	require.Len(t, table.Rows, 2)
	require.Equal(t, Attrs{"class": "odd", "id": "post_1"}, table.Rows[0].Attrs)
	require.Equal(t, Attrs{"class": "even", "id": "post_2"}, table.Rows[1].Attrs)
	require.Equal(t, []string{"Hello", "World", "Fred Smith", ""}, contents(table.Rows[0].Cells))
	require.Equal(t, []string{"Second", "Post", "", ""}, contents(table.Rows[1].Cells), "has-one cells stay empty")
	require.False(t, table.HasFoot())
}

func TestBuild_ListedFields(t *testing.T) {
	table := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data(Fields("title", "created_at", "author"))
	})
	require.Equal(t, []string{"Title", "Created at", "Author"}, headings(table))
	require.Equal(t, []string{"Hello", "", "Fred Smith"}, contents(table.Rows[0].Cells))
}

func TestBuild_DeclaredCells(t *testing.T) {
	table := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data(
			Fields("ignored"),
			Declare(func(t *TableBuilder) {
				t.Cell("title", Heading("Name"), HeadingHTML(Attrs{"class": "hoja"}), CellHTML(Attrs{"class": "batquux"}))
				t.Cell("body")
				t.Cell("shout", Value(func(record any) any {
					return strings.ToUpper(record.(testPost).Title)
				}))
				t.Cell("link", Value(func(record any) any {
					return template.HTML(`<a href="#">` + record.(testPost).Title + `</a>`)
				}))
				t.Cell("profile")
				t.Cell("id", CellHTMLFunc(func(record any) Attrs {
					return Attrs{"data-id": displayString(record.(testPost).ID)}
				}))
			}),
		)
	})
	require.Equal(t, []string{"Name", "Blah blue", "Shout", "Link", "Profile", "Id"}, headings(table))
	require.Equal(t, Attrs{"class": "hoja"}, table.Head[0].Attrs)
	require.Nil(t, table.Head[1].Attrs)

	row := table.Rows[1]
	require.Equal(t, []string{"Second", "Post", "SECOND", `<a href="#">Second</a>`, "3", "2"}, contents(row.Cells))
	require.Equal(t, Attrs{"class": "batquux"}, row.Cells[0].Attrs)
	require.Nil(t, row.Cells[1].Attrs)
	require.Equal(t, Attrs{"data-id": "2"}, row.Cells[5].Attrs)
}

func TestBuild_Footers(t *testing.T) {
	posts := testPosts()
	table := buildTable(t, posts, nil, func(t *TableBuilder) error {
		return t.Data(Declare(func(t *TableBuilder) {
			t.Cell("title", Footer("Total"))
			t.Cell("body")
			t.Cell("id", Heading("Posts"), FooterFunc(func() any {
				return t.Collection().Len()
			}))
			t.Cell("author_id", FooterFunc(func() any {
				sum := 0
				for _, post := range posts {
					sum += post.AuthorID
				}
				return sum
			}))
		}))
	})
	require.True(t, table.HasFoot())
	require.Equal(t, []string{"Total", "", "2", "7"}, contents(table.Foot))
}

func TestBuild_FooterCases(t *testing.T) {
	tests := []struct {
		name     string
		posts    []testPost
		footer   func(posts []testPost) CellOption
		wantFoot []string
	}{
		{
			name:  "sum of ids",
			posts: []testPost{{ID: 1}, {ID: 1}},
			footer: func(posts []testPost) CellOption {
				sum := 0
				for _, post := range posts {
					sum += post.ID
				}
				return Footer(sum)
			},
			wantFoot: []string{"2"},
		},
		{
			name:     "zero is a footer",
			posts:    []testPost{{ID: 1}},
			footer:   func([]testPost) CellOption { return Footer(0) },
			wantFoot: []string{"0"},
		},
		{
			name:     "nil is no footer",
			posts:    []testPost{{ID: 1}},
			footer:   func([]testPost) CellOption { return Footer(nil) },
			wantFoot: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := buildTable(t, tt.posts, nil, func(b *TableBuilder) error {
				return b.Data(Declare(func(b *TableBuilder) {
					b.Cell("id", tt.footer(tt.posts))
				}))
			})
			require.Equal(t, tt.wantFoot != nil, table.HasFoot())
			require.Equal(t, tt.wantFoot, contents(table.Foot))
		})
	}
}

func TestBuild_RowParity(t *testing.T) {
	tests := []struct {
		numRows int
		want    []string
	}{
		{numRows: 1, want: []string{"odd"}},
		{numRows: 2, want: []string{"odd", "even"}},
		{numRows: 3, want: []string{"odd", "even", "odd"}},
		{numRows: 4, want: []string{"odd", "even", "odd", "even"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows", tt.numRows), func(t *testing.T) {
			posts := make([]testPost, tt.numRows)
			for i := range posts {
				posts[i].ID = i + 1
			}
			table := buildTable(t, posts, nil, func(b *TableBuilder) error {
				return b.Data(Fields("title"))
			})
			var classes []string
			for i, row := range table.Rows {
				classes = append(classes, row.Attrs["class"])
				require.Equal(t, fmt.Sprintf("post_%d", i+1), row.Attrs["id"])
			}
			require.Equal(t, tt.want, classes)
		})
	}
}

type testWriter struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

func (w *testWriter) DisplayTitle() string { return "Dr. " + w.Name }

type testBook struct {
	ID     int        `db:"id"`
	Title  string     `db:"title"`
	Writer testWriter `db:"writer" assoc:"belongs_to"`
}

func (b *testBook) Shout() string { return b.Title + "!" }

func TestBuild_PointerReceiverMethods(t *testing.T) {
	config := DefaultConfig()
	config.LabelFields = []string{"display_title"}
	books := []testBook{{ID: 1, Title: "x", Writer: testWriter{ID: 5, Name: "Fred"}}}

	table := buildTable(t, books, config, func(b *TableBuilder) error {
		return b.Data(Fields("shout", "writer"))
	})
	require.Equal(t, []string{"x!", "Dr. Fred"}, contents(table.Rows[0].Cells))

	pointers := buildTable(t, []*testBook{&books[0]}, config, func(b *TableBuilder) error {
		return b.Data(Fields("shout", "writer"))
	})
	require.Equal(t, []string{"x!", "Dr. Fred"}, contents(pointers.Rows[0].Cells))
}

func TestBuild_NestedNilPointerIdentity(t *testing.T) {
	type node struct {
		ID **int `db:"id"`
	}
	var nilID *int
	seven := 7
	sevenPtr := &seven
	table := buildTable(t, []node{{ID: &nilID}, {ID: &sevenPtr}}, nil, func(b *TableBuilder) error {
		return b.Data(Fields("id"))
	})
	require.Equal(t, []string{""}, contents(table.Rows[0].Cells))
	require.Equal(t, []string{"7"}, contents(table.Rows[1].Cells))
	require.Equal(t, "node_7", table.Rows[1].Attrs["id"])
	require.Equal(t, "", displayString(&nilID))
}

func TestBuild_Actions(t *testing.T) {
	table := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data(Fields("title", "body"), Actions(AllActions))
	})
	require.Len(t, table.Head, 5)
	require.Equal(t, []string{"Title", "Blah blue", "", "", ""}, headings(table))
	require.Equal(t, []string{
		"Hello",
		"World",
		`<a href="/posts/1">Show</a>`,
		`<a href="/posts/1/edit">Edit</a>`,
		`<a href="/posts/1" data-confirm="Are you sure?" data-method="delete" rel="nofollow">Destroy</a>`,
	}, contents(table.Rows[0].Cells))
	require.Equal(t, Attrs{"class": "actions show_link"}, table.Rows[0].Cells[2].Attrs)
	require.Equal(t, Attrs{"class": "actions edit_link"}, table.Rows[0].Cells[3].Attrs)
	require.Equal(t, Attrs{"class": "actions destroy_link"}, table.Rows[0].Cells[4].Attrs)

	declared := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data(Declare(func(t *TableBuilder) {
			t.Action(Edit, nil)
			t.Cell("title")
		}))
	})
	require.Equal(t, []string{`<a href="/posts/2/edit">Edit</a>`, "Second"}, contents(declared.Rows[1].Cells))
}

func TestBuild_ActionPrefixes(t *testing.T) {
	fred, err := ResourceOf(&testAuthor{ID: 7})
	require.NoError(t, err)

	tests := []struct {
		name   string
		prefix Prefix
		want   string
	}{
		{name: "none", prefix: nil, want: `<a href="/posts/1">Show</a>`},
		{name: "namespace", prefix: Namespace("admin"), want: `<a href="/admin/posts/1">Show</a>`},
		{name: "parent", prefix: fred, want: `<a href="/authors/7/posts/1">Show</a>`},
		{name: "namespaced parent", prefix: NamespacedResource{Namespace: "admin", Parent: fred}, want: `<a href="/admin/authors/7/posts/1">Show</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := buildTable(t, testPosts(), nil, func(t *TableBuilder) error {
				return t.Data(Fields("title"), Actions(Show), ActionPrefix(tt.prefix))
			})
			require.Equal(t, tt.want, string(table.Rows[0].Cells[1].Content))
		})
	}
}

func TestBuild_CustomConfig(t *testing.T) {
	config := &Config{
		TableClass:   "table",
		OddRowClass:  "",
		EvenRowClass: "alt",
		NilValue:     "-",
		URLBuilder: URLBuilderFunc(func(route *Route) (string, error) {
			return "#" + route.Name() + "-" + route.Resource.ID, nil
		}),
	}
	table := buildTable(t, testPosts(), config, func(t *TableBuilder) error {
		return t.Data(Fields("author"), Actions(Destroy))
	})
	require.Equal(t, Attrs{"id": "posts", "class": "table"}, table.Attrs)
	require.Equal(t, Attrs{"id": "post_1"}, table.Rows[0].Attrs)
	require.Equal(t, Attrs{"class": "alt", "id": "post_2"}, table.Rows[1].Attrs)
	require.Equal(t, []string{"-", `<a href="#post-2" data-method="delete" rel="nofollow">Destroy</a>`}, contents(table.Rows[1].Cells))
	require.Equal(t, Attrs{"class": "destroy_link"}, table.Rows[1].Cells[1].Attrs)
}

func TestBuild_DefaultBlock(t *testing.T) {
	config := DefaultConfig().WithDefaultBlock(func(t *TableBuilder) error {
		return t.Data(Fields("title"))
	})
	table := buildTable(t, testPosts(), config, nil)
	require.Equal(t, []string{"Title"}, headings(table))

	table = buildTable(t, testPosts(), nil, nil)
	require.Empty(t, table.Head)
	require.Len(t, table.Rows, 2)
	require.Empty(t, table.Rows[0].Cells)
}

func TestBuild_EmptyCollections(t *testing.T) {
	table := buildTable(t, []testPost{}, nil, func(t *TableBuilder) error { return t.Data() })
	require.Equal(t, Attrs{"id": "posts"}, table.Attrs)
	require.Equal(t, []string{"Title", "Blah blue", "Author", "Profile"}, headings(table))
	require.Empty(t, table.Rows)

	table = buildTable(t, []any{}, nil, func(b *TableBuilder) error {
		require.Nil(t, b.Model())
		return b.Data(Actions(Show))
	})
	require.Empty(t, table.Attrs)
	require.Len(t, table.Head, 1)
	require.Empty(t, table.Rows)
}

func TestBuild_MapModel(t *testing.T) {
	model := NewMapModel("tag", Schema{Fields: []string{"id", "tag_name"}}).
		WithHumanAttributeName("tag_name", "Tag")
	records := NewRecords(model,
		map[string]any{"id": 1, "tag_name": "go"},
		map[string]any{"id": 2, "tag_name": "html"},
	)
	table := buildTable(t, records, nil, func(t *TableBuilder) error {
		return t.Data(Actions(Show))
	})
	require.Equal(t, Attrs{"id": "tags"}, table.Attrs)
	require.Equal(t, []string{"Id", "Tag", ""}, headings(table))
	require.Equal(t, []string{"2", "html", `<a href="/tags/2">Show</a>`}, contents(table.Rows[1].Cells))
}

func TestBuild_UnresolvableAssociationLabel(t *testing.T) {
	type owner struct {
		ID int `db:"id"`
	}
	type pet struct {
		ID    int    `db:"id"`
		Owner *owner `db:"owner" assoc:"belongs_to"`
	}
	core, logs := observer.New(zapcore.DebugLevel)
	config := DefaultConfig().WithLogger(zap.New(core))

	table, err := Build(context.Background(), []pet{{ID: 1, Owner: &owner{ID: 9}}}, config, func(t *TableBuilder) error {
		return t.Data()
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Owner"}, headings(table))
	require.Equal(t, []string{"9"}, contents(table.Rows[0].Cells))
	require.Equal(t, 1, logs.FilterMessage("Labeling associated record by identity").Len())
	require.Equal(t, 1, logs.FilterMessage("Declared table data").Len())
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Build(ctx, testPosts(), nil, func(t *TableBuilder) error {
		if err := t.Data(); err != nil {
			return err
		}
		return t.Data()
	})
	require.ErrorIs(t, err, ErrDataDeclaredTwice)

	_, err = Build(ctx, testPosts(), nil, func(t *TableBuilder) error {
		t.Cell("title")
		return nil
	})
	require.ErrorIs(t, err, ErrCellOutsideData)

	_, err = Build(ctx, testPosts(), nil, func(t *TableBuilder) error {
		t.Action(Show, nil)
		return t.Data()
	})
	require.ErrorIs(t, err, ErrCellOutsideData)

	_, err = Build(ctx, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data(Actions(Show, Action(42)))
	})
	require.ErrorIs(t, err, ErrInvalidActionKind)

	_, err = Build(ctx, NewRecords(opaqueModel{}, 1), nil, func(t *TableBuilder) error {
		return t.Data()
	})
	require.ErrorIs(t, err, ErrSchemaUnavailable)

	_, err = Build(ctx, []any{testPost{}, testAuthor{}}, nil, nil)
	require.ErrorIs(t, err, ErrMixedRecordTypes)

	_, err = Build(ctx, "posts", nil, nil)
	require.Error(t, err)

	_, err = Build(ctx, []testPost{{ID: 1, Body: "x"}, {ID: 2}}, nil, func(t *TableBuilder) error {
		return t.Data(Declare(func(t *TableBuilder) { t.Cell("excerpt") }))
	})
	require.EqualError(t, err, `row 1 column 0 "excerpt": no body`)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Build(canceled, testPosts(), nil, func(t *TableBuilder) error {
		return t.Data()
	})
	require.ErrorIs(t, err, context.Canceled)
}
