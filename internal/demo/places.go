package demo

import "github.com/toyz/lit/pkg/lit"

// Place is a named location
type Place struct {
	Name string `json:"name"`
}

// PlacesComponent serves /places
type PlacesComponent struct{}

func (PlacesComponent) List(res *lit.Response) error {
	return res.Success([]Place{{Name: "Home"}, {Name: "Work"}})
}

// PlacesV1 is the media type of the versioned places listing
const PlacesV1 = "application/vnd.places.v1+json"

// Versioned answers clients that accept PlacesV1 and passes everyone else on
// to List
func (PlacesComponent) Versioned(req lit.RequestContext, res *lit.Response, next lit.NextFunc) error {
	if req.Header("Accept") != PlacesV1 {
		return next()
	}
	return res.Success(map[string]interface{}{
		"version": 1,
		"places":  []Place{{Name: "Home"}, {Name: "Work"}},
	})
}

// declarePlaces uses the decorator string form
func declarePlaces(store *lit.Store) *lit.Class {
	component := lit.Component(store, "PlacesComponent", lit.Ctor0(func() PlacesComponent { return PlacesComponent{} })).
		Route(store, "Versioned", `@GetMapping(produces="`+PlacesV1+`")`, lit.RequestResponseNext(PlacesComponent.Versioned)).
		Route(store, "List", `@GetMapping`, lit.ResponseOnly(PlacesComponent.List))

	return lit.Module(store, "PlacesModule", lit.ModuleConfig{
		Path:    "places",
		Exports: []*lit.Class{component},
	})
}
