package tablefor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpacePascalCase(t *testing.T) {
	tests := []struct {
		testName string
		name     string
		want     string
	}{
		{testName: "", name: "", want: ""},
		{testName: "HelloWorld", name: "HelloWorld", want: "Hello World"},
		{testName: "_Hello_World", name: "_Hello_World", want: "Hello World"},
		{testName: "helloWorld", name: "helloWorld", want: "hello World"},
		{testName: "helloWorld_", name: "helloWorld_", want: "hello World"},
		{testName: "ThisHasMoreSpacesForSure", name: "ThisHasMoreSpacesForSure", want: "This Has More Spaces For Sure"},
		{testName: "ThisHasMore_Spaces__ForSure", name: "ThisHasMore_Spaces__ForSure", want: "This Has More Spaces For Sure"},
	}
	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			if got := SpacePascalCase(tt.name); got != tt.want {
				t.Errorf("SpacePascalCase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"title":      "Title",
		"created_at": "Created at",
		"author_id":  "Author",
		"CreatedAt":  "Created at",
		"Body Text":  "Body text",
		"über_zahl":  "Über zahl",
	}
	for name, want := range tests {
		require.Equal(t, want, Humanize(name), "Humanize(%q)", name)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"Title":     "title",
		"CreatedAt": "created_at",
		"AuthorID":  "author_id",
		"HTMLBody":  "html_body",
		"ID":        "id",
		"Post2Tag":  "post2_tag",
		"snake_ok":  "snake_ok",
		"Blog_Post": "blog_post",
	}
	for name, want := range tests {
		require.Equal(t, want, SnakeCase(name), "SnakeCase(%q)", name)
	}
}

func TestPascalCase(t *testing.T) {
	require.Equal(t, "FullName", PascalCase("full_name"))
	require.Equal(t, "ToLabel", PascalCase("to_label"))
	require.Equal(t, "Title", PascalCase("title"))
	require.Equal(t, "", PascalCase(""))
}

func TestCollectionAndModelName(t *testing.T) {
	require.Equal(t, "posts", CollectionName("post"))
	require.Equal(t, "people", CollectionName("person"))
	require.Equal(t, "blog_posts", CollectionName("blog_post"))
	require.Equal(t, "", CollectionName(""))

	require.Equal(t, "post", ModelName("Posts"))
	require.Equal(t, "person", ModelName("people"))
	require.Equal(t, "blog_post", ModelName("Blog Posts"))
	require.Equal(t, "blog_post", ModelName("BlogPosts"))
}
