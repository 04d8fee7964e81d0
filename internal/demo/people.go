package demo

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/toyz/lit/pkg/lit"
)

// Person is a record served by the people module
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PeopleService keeps people in memory
type PeopleService struct {
	mu     sync.RWMutex
	people []Person
}

// NewPeopleService returns a service seeded with one person
func NewPeopleService() *PeopleService {
	return &PeopleService{people: []Person{{ID: "test-1", Name: "Test Name"}}}
}

// Fetch returns every person
func (s *PeopleService) Fetch() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Person, len(s.people))
	copy(out, s.people)
	return out
}

// Find looks a person up by id
func (s *PeopleService) Find(id string) (Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Add stores a new person and assigns its id
func (s *PeopleService) Add(name string) Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Person{ID: fmt.Sprintf("test-%d", len(s.people)+1), Name: name}
	s.people = append(s.people, p)
	return p
}

// PeopleComponent serves /people
type PeopleComponent struct {
	service *PeopleService
}

// NewPeopleComponent injects the people service
func NewPeopleComponent(service *PeopleService) *PeopleComponent {
	return &PeopleComponent{service: service}
}

func (c *PeopleComponent) List(req lit.RequestContext, res *lit.Response) error {
	limit, err := lit.Query(req, "limit", 0, lit.ParseInt)
	if err != nil {
		return err
	}
	people := c.service.Fetch()
	if limit > 0 && limit < len(people) {
		people = people[:limit]
	}
	return res.Success(people)
}

func (c *PeopleComponent) Show(req lit.RequestContext, res *lit.Response) error {
	person, ok := c.service.Find(req.Param("id"))
	if !ok {
		return lit.NewHTTPError(http.StatusNotFound, "person not found")
	}
	return res.Success(person)
}

func (c *PeopleComponent) Create(req lit.RequestContext, res *lit.Response) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := req.Bind(&body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Name) == "" {
		return res.Errored(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	return res.Created(c.service.Add(body.Name))
}

// declarePeople registers the service, component and module. Mappings use
// the explicit call form.
func declarePeople(store *lit.Store) *lit.Class {
	service := lit.Service(store, "PeopleService", lit.Ctor0(NewPeopleService))

	component := lit.Component(store, "PeopleComponent", lit.Ctor1(NewPeopleComponent), service).
		Method("List", lit.RequestResponse((*PeopleComponent).List)).
		Method("Show", lit.RequestResponse((*PeopleComponent).Show)).
		Method("Create", lit.RequestResponse((*PeopleComponent).Create))
	lit.GetMapping(store, component, "List")
	lit.GetMapping(store, component, "Show", lit.Mapping{Path: ":id"})
	lit.PostMapping(store, component, "Create")

	return lit.Module(store, "PeopleModule", lit.ModuleConfig{
		Path:    "people",
		Exports: []*lit.Class{component},
	})
}
