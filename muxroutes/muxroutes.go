// Package muxroutes builds action link URLs from the
// named routes of a gorilla/mux router.
//
// Routes are named like tablefor.Route.Name returns them,
// for example "admin_author_post" for the show and destroy route
// and "edit_admin_author_post" for the edit route.
// The record identity is passed as route variable "id",
// the identity of a parent resource as "<parent>_id".
package muxroutes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/domonda/go-tablefor"
)

// ErrRouteNotFound is returned for an action link
// without a named route in the router.
var ErrRouteNotFound = errors.New("route not found")

var _ tablefor.URLBuilder = new(URLBuilder)

// URLBuilder implements tablefor.URLBuilder with a mux.Router.
type URLBuilder struct {
	router *mux.Router
}

func NewURLBuilder(router *mux.Router) *URLBuilder {
	return &URLBuilder{router: router}
}

// URL returns the URL of the route named route.Name().
func (b *URLBuilder) URL(route *tablefor.Route) (string, error) {
	name := route.Name()
	r := b.router.Get(name)
	if r == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	pairs := []string{"id", route.Resource.ID}
	if route.Parent != nil {
		pairs = append(pairs, ParentVar(route.Parent.Name), route.Parent.ID)
	}
	u, err := r.URL(pairs...)
	if err != nil {
		return "", fmt.Errorf("building URL of route %s: %w", name, err)
	}
	return u.String(), nil
}

// ParentVar returns the route variable name
// for the identity of a parent resource.
func ParentVar(parent string) string {
	return parent + "_id"
}

// HandleResource registers the named routes of a resource:
// GET and DELETE on the record path for show and destroy
// and GET on the record path with an "/edit" suffix.
// The show route is named if show is not nil,
// else the destroy route carries the shared name.
// namespace and parent are optional.
//
// The handlers can read the identities with mux.Vars.
func HandleResource(router *mux.Router, namespace, parent, resource string, show, edit, destroy http.Handler) {
	path := resourcePath(namespace, parent, resource)
	route := func(action tablefor.Action) string {
		r := &tablefor.Route{Action: action, Namespace: namespace, Resource: tablefor.RouteResource{Name: resource}}
		if parent != "" {
			r.Parent = &tablefor.RouteResource{Name: parent}
		}
		return r.Name()
	}

	if edit != nil {
		router.Handle(path+"/edit", edit).Methods(http.MethodGet).Name(route(tablefor.Edit))
	}
	if destroy != nil {
		r := router.Handle(path, destroy).Methods(http.MethodDelete, http.MethodPost)
		// Show and destroy share a route name
		if show == nil {
			r.Name(route(tablefor.Destroy))
		}
	}
	if show != nil {
		router.Handle(path, show).Methods(http.MethodGet).Name(route(tablefor.Show))
	}
}

func resourcePath(namespace, parent, resource string) string {
	var b strings.Builder
	if namespace != "" {
		b.WriteString("/" + namespace)
	}
	if parent != "" {
		b.WriteString("/" + tablefor.CollectionName(parent) + "/{" + ParentVar(parent) + "}")
	}
	b.WriteString("/" + tablefor.CollectionName(resource) + "/{id}")
	return b.String()
}
