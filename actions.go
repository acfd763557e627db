package tablefor

import (
	"fmt"
	"html/template"
	"net/url"
	"reflect"
	"strings"
)

// Action is the kind of a per record action link.
type Action int

const (
	Show Action = iota + 1
	Edit
	Destroy
	// AllActions expands to Show, Edit and Destroy in that order.
	AllActions
)

// ParseAction parses "show", "edit", "destroy" or "all".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "show":
		return Show, nil
	case "edit":
		return Edit, nil
	case "destroy":
		return Destroy, nil
	case "all":
		return AllActions, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidActionKind, s)
}

func (a Action) String() string {
	switch a {
	case Show:
		return "show"
	case Edit:
		return "edit"
	case Destroy:
		return "destroy"
	case AllActions:
		return "all"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Label returns the link text of the action.
func (a Action) Label() string {
	switch a {
	case Show:
		return "Show"
	case Edit:
		return "Edit"
	case Destroy:
		return "Destroy"
	}
	return ""
}

// Valid returns true for Show, Edit, Destroy and AllActions.
func (a Action) Valid() bool {
	return a >= Show && a <= AllActions
}

// ExpandActions validates actions and replaces AllActions
// with Show, Edit and Destroy.
func ExpandActions(actions ...Action) ([]Action, error) {
	expanded := make([]Action, 0, len(actions))
	for _, action := range actions {
		switch {
		case !action.Valid():
			return nil, fmt.Errorf("%w: %s", ErrInvalidActionKind, action)
		case action == AllActions:
			expanded = append(expanded, Show, Edit, Destroy)
		default:
			expanded = append(expanded, action)
		}
	}
	return expanded, nil
}

// Prefix changes the route of action links.
// A nil Prefix routes to the collection of the record itself.
// The implementations are Namespace, Resource and NamespacedResource.
type Prefix interface {
	routePrefix() (namespace string, parent *Resource)
}

// Namespace is a Prefix adding a leading path segment, e.g. "/admin/posts/1".
type Namespace string

func (ns Namespace) routePrefix() (string, *Resource) { return string(ns), nil }

// Resource is a record together with its model.
// As Prefix it nests action links under the
// parent record, e.g. "/authors/7/posts/1".
type Resource struct {
	Model  Model
	Record any
}

// ResourceOf returns a Resource for a struct record
// described by a StructModel.
func ResourceOf(record any) (Resource, error) {
	model, err := StructModelOf(reflect.TypeOf(record))
	if err != nil {
		return Resource{}, err
	}
	return Resource{Model: model, Record: record}, nil
}

func (r Resource) routePrefix() (string, *Resource) { return "", &r }

// NamespacedResource is a Prefix applying a namespace
// outside a parent resource, e.g. "/admin/authors/7/posts/1".
type NamespacedResource struct {
	Namespace string
	Parent    Resource
}

func (n NamespacedResource) routePrefix() (string, *Resource) {
	return n.Namespace, &n.Parent
}

func resolvePrefix(prefix Prefix) (namespace string, parent *Resource) {
	if prefix == nil {
		return "", nil
	}
	return prefix.routePrefix()
}

// RouteResource identifies a record in a route.
type RouteResource struct {
	// Name is the singular model name.
	Name string
	ID   string
}

// Collection returns the plural collection name of the resource.
func (r RouteResource) Collection() string {
	return CollectionName(r.Name)
}

// Route is the resolved target of an action link.
type Route struct {
	Action    Action
	Namespace string
	Parent    *RouteResource
	Resource  RouteResource
}

// Name returns the route name in the form
// [edit_][namespace_][parent_]resource, e.g. "edit_admin_author_post".
// Show and Destroy share the same name.
func (r *Route) Name() string {
	var parts []string
	if r.Action == Edit {
		parts = append(parts, "edit")
	}
	if r.Namespace != "" {
		parts = append(parts, r.Namespace)
	}
	if r.Parent != nil {
		parts = append(parts, r.Parent.Name)
	}
	parts = append(parts, r.Resource.Name)
	return strings.Join(parts, "_")
}

// URLBuilder returns the URL for a route.
type URLBuilder interface {
	URL(route *Route) (string, error)
}

// URLBuilderFunc implements URLBuilder with a function.
type URLBuilderFunc func(route *Route) (string, error)

func (f URLBuilderFunc) URL(route *Route) (string, error) {
	return f(route)
}

// RESTPaths builds resource paths like
// /admin/authors/7/posts/1 and /admin/authors/7/posts/1/edit
var RESTPaths URLBuilder = URLBuilderFunc(restPath)

func restPath(route *Route) (string, error) {
	if route.Resource.Name == "" {
		return "", fmt.Errorf("route for %s action has no resource name", route.Action)
	}
	var b strings.Builder
	if route.Namespace != "" {
		b.WriteString("/" + url.PathEscape(route.Namespace))
	}
	if route.Parent != nil {
		b.WriteString("/" + url.PathEscape(route.Parent.Collection()) + "/" + url.PathEscape(route.Parent.ID))
	}
	b.WriteString("/" + url.PathEscape(route.Resource.Collection()) + "/" + url.PathEscape(route.Resource.ID))
	if route.Action == Edit {
		b.WriteString("/edit")
	}
	return b.String(), nil
}

// Link is a resolved action link.
type Link struct {
	Action Action
	URL    string
	Label  string
}

// HTML returns the anchor element of the link.
// Destroy links carry data-method="delete"
// and the confirm question if not empty.
func (l Link) HTML(confirm string) template.HTML {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(template.HTMLEscapeString(l.URL))
	b.WriteByte('"')
	if l.Action == Destroy {
		if confirm != "" {
			b.WriteString(` data-confirm="` + template.HTMLEscapeString(confirm) + `"`)
		}
		b.WriteString(` data-method="delete" rel="nofollow"`)
	}
	b.WriteByte('>')
	b.WriteString(template.HTMLEscapeString(l.Label))
	b.WriteString("</a>")
	return template.HTML(b.String()) //#nosec G203
}

// BuildLink returns the link for an action on a record.
// The action must be Show, Edit or Destroy.
func BuildLink(model Model, record any, action Action, prefix Prefix, urls URLBuilder) (Link, error) {
	if !action.Valid() || action == AllActions {
		return Link{}, fmt.Errorf("%w: %s", ErrInvalidActionKind, action)
	}
	if urls == nil {
		urls = RESTPaths
	}
	resource, err := routeResource(model, record)
	if err != nil {
		return Link{}, err
	}
	route := &Route{Action: action, Resource: resource}
	namespace, parent := resolvePrefix(prefix)
	route.Namespace = namespace
	if parent != nil {
		parentResource, err := routeResource(parent.Model, parent.Record)
		if err != nil {
			return Link{}, fmt.Errorf("parent resource: %w", err)
		}
		route.Parent = &parentResource
	}
	u, err := urls.URL(route)
	if err != nil {
		return Link{}, err
	}
	return Link{Action: action, URL: u, Label: action.Label()}, nil
}

func routeResource(model Model, record any) (RouteResource, error) {
	if model == nil {
		return RouteResource{}, fmt.Errorf("%w: no model for %T", ErrMissingIdentity, record)
	}
	id, ok := model.ID(record)
	if !ok {
		return RouteResource{}, fmt.Errorf("%w: %s record", ErrMissingIdentity, model.Name())
	}
	return RouteResource{Name: model.Name(), ID: fmt.Sprint(id)}, nil
}
