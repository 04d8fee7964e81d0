// Package demo is the people and places sample application served by the
// lit CLI.
package demo

import "github.com/toyz/lit/pkg/lit"

// AppComponent serves the root path
type AppComponent struct{}

func (AppComponent) Home(res *lit.Response) error {
	return res.Success(map[string]string{"message": "Hello world!"})
}

// AppModule declares the application on store and returns its root module
func AppModule(store *lit.Store) *lit.Class {
	app := lit.Component(store, "AppComponent", lit.Ctor0(func() AppComponent { return AppComponent{} })).
		Route(store, "Home", `@GetMapping`, lit.ResponseOnly(AppComponent.Home))

	return lit.Module(store, "AppModule", lit.ModuleConfig{
		Imports: []*lit.Class{declarePeople(store), declarePlaces(store)},
		Exports: []*lit.Class{app},
	})
}
